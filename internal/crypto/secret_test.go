package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestSecret_CopiesInput(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	s := NewSecret(src)

	src[0] = 0xFF
	if s.Bytes()[0] != 1 {
		t.Fatalf("expected secret to own a copy of the input")
	}
}

func TestSecret_WipeClearsBuffer(t *testing.T) {
	s := NewSecret(bytes.Repeat([]byte{0xAA}, 32))
	buf := s.Bytes()

	s.Wipe()

	if s.Len() != 0 {
		t.Fatalf("length after wipe = %d, want 0", s.Len())
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %#x after wipe, want 0", i, b)
		}
	}
}

func TestSecret_WipeIdempotent(t *testing.T) {
	s := NewSecret([]byte("key material"))
	s.Wipe()
	s.Wipe() // second wipe is a no-op

	var nilSecret *Secret
	nilSecret.Wipe() // nil receiver must not panic
}

func TestRandomSecret_LengthAndRandomness(t *testing.T) {
	s1, err := RandomSecret(32)
	if err != nil {
		t.Fatalf("RandomSecret error: %v", err)
	}
	s2, err := RandomSecret(32)
	if err != nil {
		t.Fatalf("RandomSecret error: %v", err)
	}

	if s1.Len() != 32 {
		t.Fatalf("length = %d, want 32", s1.Len())
	}
	if bytes.Equal(s1.Bytes(), s2.Bytes()) {
		t.Fatalf("expected random secrets to differ")
	}
}

func TestLoadOrCreateIdentity_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "identity")

	first, err := LoadOrCreateIdentity(path)
	if err != nil {
		t.Fatalf("LoadOrCreateIdentity (create) error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat identity file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("identity file mode = %o, want 600", perm)
	}

	second, err := LoadOrCreateIdentity(path)
	if err != nil {
		t.Fatalf("LoadOrCreateIdentity (load) error: %v", err)
	}

	if !bytes.Equal(first.PublicKey().Bytes(), second.PublicKey().Bytes()) {
		t.Fatalf("expected the same identity key across loads")
	}
}
