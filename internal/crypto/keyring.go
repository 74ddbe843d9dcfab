// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// sessionKeyLen is the length of each derived session key: 256 bits for
// AES-256-GCM encryption and for HMAC-SHA256 authentication.
const sessionKeyLen = 32

// keyring is the private implementation of [Keyring] over NIST P-256.
type keyring struct {
	curve ecdh.Curve
}

// NewKeyring constructs a [Keyring] over NIST P-256.
func NewKeyring() Keyring {
	return &keyring{curve: ecdh.P256()}
}

// GenerateEphemeral implements [Keyring]. The private key exists only in
// memory for the lifetime of one handshake and is never persisted.
func (k *keyring) GenerateEphemeral() (*ecdh.PrivateKey, error) {
	priv, err := k.curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}
	return priv, nil
}

// SharedSecret implements [Keyring]. crypto/ecdh rejects off-curve and
// identity points on its own; the all-zero check is kept as an explicit
// guard against a degenerate agreement ever reaching key derivation.
func (k *keyring) SharedSecret(priv *ecdh.PrivateKey, peerPublicKey []byte) (*Secret, error) {
	pub, err := k.curve.NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyExchange, err)
	}

	shared, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyExchange, err)
	}

	var acc byte
	for _, b := range shared {
		acc |= b
	}
	if acc == 0 {
		return nil, ErrKeyExchange
	}

	secret := NewSecret(shared)
	wipe(shared)
	return secret, nil
}

// DeriveSessionKeys implements [Keyring]. It reads 64 bytes of output key
// material from HKDF-SHA256 (RFC 5869 extract-then-expand) and splits it in
// half: the first 32 bytes become the encryption key, the last 32 the
// authentication key.
func (k *keyring) DeriveSessionKeys(secret *Secret, salt []byte, info string) (*Secret, *Secret, error) {
	if secret == nil || secret.Len() == 0 {
		return nil, nil, ErrInvalidKeySize
	}

	okm := make([]byte, 2*sessionKeyLen)
	r := hkdf.New(sha256.New, secret.Bytes(), salt, []byte(info))
	if _, err := io.ReadFull(r, okm); err != nil {
		return nil, nil, fmt.Errorf("derive session keys: %w", err)
	}

	encKey := NewSecret(okm[:sessionKeyLen])
	authKey := NewSecret(okm[sessionKeyLen:])
	wipe(okm)

	return encKey, authKey, nil
}

// DeviceSalt computes the handshake KDF salt for the initiating device:
// SHA-256 of the device identifier. Both peers must use the initiator's ID
// so they derive identical session keys.
func DeviceSalt(deviceID string) []byte {
	sum := sha256.Sum256([]byte(deviceID))
	return sum[:]
}

// wipe zeroes a transient buffer that held key material.
//
//go:noinline
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
