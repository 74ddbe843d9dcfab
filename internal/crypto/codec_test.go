package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func testKeys(t *testing.T) (*Secret, *Secret) {
	t.Helper()
	enc := NewSecret(bytes.Repeat([]byte{0x2A}, 32))
	auth := NewSecret(bytes.Repeat([]byte{0x5C}, 32))
	return enc, auth
}

func TestSealOpen_RoundTrip(t *testing.T) {
	enc, auth := testKeys(t)
	plaintext := []byte(`{"foo":"bar"}`)

	nonce, ciphertext, mac, err := Seal(enc, auth, plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if len(nonce) != 12 {
		t.Fatalf("nonce length = %d, want 12", len(nonce))
	}

	got, err := Open(enc, auth, nonce, ciphertext, mac)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	enc, auth := testKeys(t)

	n1, c1, _, err := Seal(enc, auth, []byte("same message"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	n2, c2, _, err := Seal(enc, auth, []byte("same message"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(n1, n2) {
		t.Fatalf("expected a fresh nonce per packet")
	}
	if bytes.Equal(c1, c2) {
		t.Fatalf("expected differing ciphertexts under fresh nonces")
	}
}

// Flipping any single bit of the ciphertext or the HMAC must fail closed
// with ErrAuthenticationFailed, never produce garbage plaintext.
func TestOpen_SingleBitTamperDetected(t *testing.T) {
	enc, auth := testKeys(t)

	nonce, ciphertext, mac, err := Seal(enc, auth, []byte("sensitive vault manifest"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	for i := range ciphertext {
		for bit := 0; bit < 8; bit++ {
			tampered := append([]byte(nil), ciphertext...)
			tampered[i] ^= 1 << bit

			if _, err := Open(enc, auth, nonce, tampered, mac); !errors.Is(err, ErrAuthenticationFailed) {
				t.Fatalf("ciphertext bit flip at byte %d bit %d: got %v, want ErrAuthenticationFailed", i, bit, err)
			}
		}
	}

	for i := range mac {
		tampered := append([]byte(nil), mac...)
		tampered[i] ^= 0x01

		if _, err := Open(enc, auth, nonce, ciphertext, tampered); !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("hmac tamper at byte %d: got %v, want ErrAuthenticationFailed", i, err)
		}
	}
}

func TestOpen_WrongAuthKeyFailsBeforeDecryption(t *testing.T) {
	enc, auth := testKeys(t)
	otherAuth := NewSecret(bytes.Repeat([]byte{0x99}, 32))

	nonce, ciphertext, mac, err := Seal(enc, auth, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if _, err := Open(enc, otherAuth, nonce, ciphertext, mac); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed with wrong auth key, got %v", err)
	}
}

func TestOpen_WrongEncryptionKey(t *testing.T) {
	enc, auth := testKeys(t)
	otherEnc := NewSecret(bytes.Repeat([]byte{0x77}, 32))

	nonce, ciphertext, _, err := Seal(enc, auth, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	// Recompute a valid HMAC so the failure comes from the GCM layer.
	mac := authenticate(auth, nonce, ciphertext)
	if _, err := Open(otherEnc, auth, nonce, ciphertext, mac); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed with wrong enc key, got %v", err)
	}
}

func TestOpen_BadNonceLength(t *testing.T) {
	enc, auth := testKeys(t)

	if _, err := Open(enc, auth, []byte("short"), []byte("ct"), []byte("mac")); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed for bad nonce, got %v", err)
	}
}

func TestSeal_RejectsBadKeySize(t *testing.T) {
	auth := NewSecret(bytes.Repeat([]byte{0x01}, 32))
	short := NewSecret([]byte("too short"))

	if _, _, _, err := Seal(short, auth, []byte("m")); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
}
