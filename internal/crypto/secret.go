// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"io"
	"runtime"
)

// Secret is a scoped buffer for session key material. It guarantees
// overwrite-then-zero semantics on release: Wipe first fills the buffer with
// random bytes, then zeroes it, so neither the key nor a recognizable
// pattern survives in freed memory.
//
// Secrets are never marshalled, persisted, or logged.
type Secret struct {
	b []byte
}

// NewSecret copies b into a fresh Secret. The caller keeps ownership of b
// and should wipe it separately if it holds key material.
func NewSecret(b []byte) *Secret {
	s := &Secret{b: make([]byte, len(b))}
	copy(s.b, b)
	return s
}

// RandomSecret draws n bytes from the OS CSPRNG into a fresh Secret.
func RandomSecret(n int) (*Secret, error) {
	s := &Secret{b: make([]byte, n)}
	if _, err := io.ReadFull(rand.Reader, s.b); err != nil {
		return nil, err
	}
	return s, nil
}

// Bytes exposes the underlying buffer. The slice aliases the secret's
// memory: callers must not retain it past the secret's lifetime.
func (s *Secret) Bytes() []byte {
	return s.b
}

// Len returns the buffer length, zero after Wipe.
func (s *Secret) Len() int {
	return len(s.b)
}

// Wipe overwrites the buffer with random bytes, then zeroes it, then drops
// the reference. Best-effort: the noinline pragma and KeepAlive reduce the
// chance of the compiler eliding the writes.
//
//go:noinline
func (s *Secret) Wipe() {
	if s == nil || s.b == nil {
		return
	}
	_, _ = io.ReadFull(rand.Reader, s.b)
	for i := range s.b {
		s.b[i] = 0
	}
	runtime.KeepAlive(&s.b)
	s.b = nil
}
