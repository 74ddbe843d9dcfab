// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// nonceSize is the GCM nonce length in bytes (96 bits).
const nonceSize = 12

// Seal encrypts plaintext with encKey using AES-256-GCM under a fresh
// random 96-bit nonce, then computes HMAC-SHA256(authKey, nonce ‖ ciphertext)
// as a defense-in-depth authenticator on top of the GCM tag.
func Seal(encKey, authKey *Secret, plaintext []byte) (nonce, ciphertext, mac []byte, err error) {
	gcm, err := newGCM(encKey)
	if err != nil {
		return nil, nil, nil, err
	}

	nonce = make([]byte, nonceSize)
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext = gcm.Seal(nil, nonce, plaintext, nil)
	mac = authenticate(authKey, nonce, ciphertext)

	return nonce, ciphertext, mac, nil
}

// Open verifies mac in constant time and only then attempts GCM decryption.
// A mismatch on either layer returns ErrAuthenticationFailed so a tampered
// packet is discarded before any plaintext-dependent processing can happen.
func Open(encKey, authKey *Secret, nonce, ciphertext, mac []byte) ([]byte, error) {
	if len(nonce) != nonceSize {
		return nil, ErrAuthenticationFailed
	}

	expected := authenticate(authKey, nonce, ciphertext)
	if !hmac.Equal(expected, mac) {
		return nil, ErrAuthenticationFailed
	}

	gcm, err := newGCM(encKey)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

func newGCM(encKey *Secret) (cipher.AEAD, error) {
	if encKey == nil || encKey.Len() != sessionKeyLen {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(encKey.Bytes())
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

func authenticate(authKey *Secret, nonce, ciphertext []byte) []byte {
	h := hmac.New(sha256.New, authKey.Bytes())
	h.Write(nonce)
	h.Write(ciphertext)
	return h.Sum(nil)
}
