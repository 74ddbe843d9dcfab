// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

const (
	// handshakeInfo is the KDF info string for handshake-derived keys.
	// Rotation appends "/rotate/<counter>" so every generation of keys is
	// domain-separated from the previous one.
	handshakeInfo = "SyncKeys"

	maxSessionLifetime = 24 * time.Hour
	sessionIdleTimeout = 2 * time.Hour

	rotationSaltLen = 16
)

// session is one live peer session. Key material is mutated only under mu so
// no half-rotated key ever serves an in-flight encrypt or decrypt call.
type session struct {
	mu sync.Mutex

	id       string
	deviceID string

	encKey  *crypto.Secret
	authKey *crypto.Secret

	ephemeralPublicKey []byte

	createdAt  time.Time
	lastUsedAt time.Time

	rotations     uint64
	rotationTimer *time.Timer
	closed        bool
}

// sessionManager is the concrete implementation of SessionManager. The
// session table is keyed by peer device ID; at most one session per peer
// exists at a time, a new handshake closes and wipes the previous one.
//
// Lock ordering: m.mu before s.mu, never the reverse.
type sessionManager struct {
	keyring  crypto.Keyring
	identity *ecdh.PrivateKey

	deviceID         string
	rotationInterval time.Duration

	mu       sync.Mutex
	sessions map[string]*session // peer device ID -> session
	byID     map[string]string   // session ID -> peer device ID

	uuid   *utils.UUIDGenerator
	logger *logger.Logger

	now func() time.Time
}

// NewSessionManager constructs a SessionManager bound to this device's
// identity key. Rotation fires every workersCfg.RotationInterval while a
// session is active; a non-positive interval disables rotation (used in
// tests that drive Rotate directly).
func NewSessionManager(keyring crypto.Keyring, identity *ecdh.PrivateKey, appCfg config.App, workersCfg config.Workers, logger *logger.Logger) SessionManager {
	return &sessionManager{
		keyring:          keyring,
		identity:         identity,
		deviceID:         appCfg.DeviceID,
		rotationInterval: workersCfg.RotationInterval,
		sessions:         make(map[string]*session),
		byID:             make(map[string]string),
		uuid:             utils.NewUUIDGenerator(),
		logger:           logger,
		now:              time.Now,
	}
}

// Initiate implements SessionManager. Both sides of the pairing derive
// identical keys because the responder's Accept uses the same shared point
// and the same salt, computed from the initiator's device ID.
func (m *sessionManager) Initiate(deviceID string, peerLongTermPublicKey []byte) (SessionInfo, error) {
	eph, err := m.keyring.GenerateEphemeral()
	if err != nil {
		return SessionInfo{}, err
	}

	shared, err := m.keyring.SharedSecret(eph, peerLongTermPublicKey)
	if err != nil {
		return SessionInfo{}, err
	}
	defer shared.Wipe()

	encKey, authKey, err := m.keyring.DeriveSessionKeys(shared, crypto.DeviceSalt(m.deviceID), handshakeInfo)
	if err != nil {
		return SessionInfo{}, err
	}

	return m.register(deviceID, eph.PublicKey().Bytes(), encKey, authKey), nil
}

// Accept implements SessionManager.
func (m *sessionManager) Accept(deviceID string, peerLongTermPublicKey, peerEphemeralPublicKey []byte) (SessionInfo, error) {
	// The pairing-store key is not used in the agreement on this side, but
	// a record that does not even parse as a curve point means the pairing
	// is corrupted and the handshake must not proceed.
	if _, err := ecdh.P256().NewPublicKey(peerLongTermPublicKey); err != nil {
		return SessionInfo{}, fmt.Errorf("%w: pairing record public key: %w", crypto.ErrKeyExchange, err)
	}

	shared, err := m.keyring.SharedSecret(m.identity, peerEphemeralPublicKey)
	if err != nil {
		return SessionInfo{}, err
	}
	defer shared.Wipe()

	// Salt is always the initiator's device ID, here the remote peer's.
	encKey, authKey, err := m.keyring.DeriveSessionKeys(shared, crypto.DeviceSalt(deviceID), handshakeInfo)
	if err != nil {
		return SessionInfo{}, err
	}

	return m.register(deviceID, peerEphemeralPublicKey, encKey, authKey), nil
}

func (m *sessionManager) register(deviceID string, ephemeralPub []byte, encKey, authKey *crypto.Secret) SessionInfo {
	now := m.now()
	s := &session{
		id:                 m.uuid.Generate(),
		deviceID:           deviceID,
		encKey:             encKey,
		authKey:            authKey,
		ephemeralPublicKey: ephemeralPub,
		createdAt:          now,
		lastUsedAt:         now,
	}

	m.mu.Lock()
	if old, ok := m.sessions[deviceID]; ok {
		m.removeLocked(old)
	}
	m.sessions[deviceID] = s
	m.byID[s.id] = deviceID
	m.mu.Unlock()

	m.scheduleRotation(s)

	m.logger.Debug().Str("device_id", deviceID).Str("session_id", s.id).Msg("session established")
	return sessionInfo(s)
}

// Rotate implements SessionManager. The new keys are derived from the
// current encryption key, so an attacker holding a rotated key cannot walk
// backwards to pre-rotation keys, and pre-rotation keys do not predict the
// salt drawn for the next generation.
func (m *sessionManager) Rotate(sessionID string) error {
	s, err := m.lookupByID(sessionID)
	if err != nil {
		return err
	}

	salt := make([]byte, rotationSaltLen)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate rotation salt: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	if !m.validLocked(s) {
		s.mu.Unlock()
		m.closeSession(s)
		return ErrSessionExpired
	}

	seed := crypto.NewSecret(s.encKey.Bytes())
	next := s.rotations + 1
	encKey, authKey, err := m.keyring.DeriveSessionKeys(seed, salt, fmt.Sprintf("%s/rotate/%d", handshakeInfo, next))
	seed.Wipe()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.encKey.Wipe()
	s.authKey.Wipe()
	s.encKey = encKey
	s.authKey = authKey
	s.rotations = next
	if s.rotationTimer != nil {
		s.rotationTimer.Stop()
	}
	if m.rotationInterval > 0 {
		s.rotationTimer = time.AfterFunc(m.rotationInterval, func() { m.rotateScheduled(sessionID) })
	}
	s.mu.Unlock()

	m.logger.Debug().Str("session_id", sessionID).Uint64("rotation", next).Msg("session keys rotated")
	return nil
}

// rotateScheduled is the timer callback. Lookup by session ID is the
// check-and-act step: if the session was closed or replaced since the timer
// was armed, the rotation silently does nothing.
func (m *sessionManager) rotateScheduled(sessionID string) {
	_ = m.Rotate(sessionID)
}

func (m *sessionManager) scheduleRotation(s *session) {
	if m.rotationInterval <= 0 {
		return
	}

	sessionID := s.id
	s.mu.Lock()
	if !s.closed {
		s.rotationTimer = time.AfterFunc(m.rotationInterval, func() { m.rotateScheduled(sessionID) })
	}
	s.mu.Unlock()
}

// IsValid implements SessionManager.
func (m *sessionManager) IsValid(sessionID string) bool {
	s, err := m.lookupByID(sessionID)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return m.validLocked(s)
}

// SessionFor implements SessionManager.
func (m *sessionManager) SessionFor(deviceID string) (SessionInfo, error) {
	s, err := m.lookupByDevice(deviceID)
	if err != nil {
		return SessionInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return sessionInfo(s), nil
}

// Close implements SessionManager.
func (m *sessionManager) Close(sessionID string) error {
	s, err := m.lookupByID(sessionID)
	if err != nil {
		return nil
	}

	m.closeSession(s)
	return nil
}

// Stop implements SessionManager.
func (m *sessionManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		m.removeLocked(s)
	}
}

// Encrypt implements SessionManager.
func (m *sessionManager) Encrypt(deviceID string, message any) (models.EncryptedPacket, error) {
	s, err := m.lookupByDevice(deviceID)
	if err != nil {
		return models.EncryptedPacket{}, err
	}

	plaintext, err := json.Marshal(message)
	if err != nil {
		return models.EncryptedPacket{}, fmt.Errorf("%w: marshal message: %w", ErrProtocol, err)
	}

	s.mu.Lock()
	if !m.validLocked(s) {
		s.mu.Unlock()
		m.closeSession(s)
		return models.EncryptedPacket{}, ErrSessionExpired
	}

	nonce, ciphertext, mac, err := crypto.Seal(s.encKey, s.authKey, plaintext)
	if err == nil {
		s.lastUsedAt = m.now()
	}
	s.mu.Unlock()
	if err != nil {
		return models.EncryptedPacket{}, err
	}

	return models.EncryptedPacket{
		DeviceID:   m.deviceID,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		HMAC:       base64.StdEncoding.EncodeToString(mac),
		Timestamp:  m.now().Unix(),
	}, nil
}

// Decrypt implements SessionManager.
func (m *sessionManager) Decrypt(deviceID string, packet models.EncryptedPacket, out any) error {
	s, err := m.lookupByDevice(deviceID)
	if err != nil {
		return err
	}

	nonce, err := base64.StdEncoding.DecodeString(packet.Nonce)
	if err != nil {
		return fmt.Errorf("%w: decode nonce: %w", ErrProtocol, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(packet.Ciphertext)
	if err != nil {
		return fmt.Errorf("%w: decode ciphertext: %w", ErrProtocol, err)
	}
	mac, err := base64.StdEncoding.DecodeString(packet.HMAC)
	if err != nil {
		return fmt.Errorf("%w: decode hmac: %w", ErrProtocol, err)
	}

	s.mu.Lock()
	if !m.validLocked(s) {
		s.mu.Unlock()
		m.closeSession(s)
		return ErrSessionExpired
	}

	plaintext, err := crypto.Open(s.encKey, s.authKey, nonce, ciphertext, mac)
	if err == nil {
		s.lastUsedAt = m.now()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err = json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("%w: unmarshal message: %w", ErrProtocol, err)
	}
	return nil
}

func (m *sessionManager) lookupByID(sessionID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deviceID, ok := m.byID[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, ok := m.sessions[deviceID]
	if !ok || s.id != sessionID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *sessionManager) lookupByDevice(deviceID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[deviceID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// closeSession removes s from the table if it is still the registered
// session for its device, then wipes its keys. A concurrent handshake may
// already have replaced it; replacement wiped it too, so nothing is done.
func (m *sessionManager) closeSession(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.sessions[s.deviceID]; ok && cur == s {
		m.removeLocked(s)
	}
}

// removeLocked requires m.mu held.
func (m *sessionManager) removeLocked(s *session) {
	delete(m.sessions, s.deviceID)
	delete(m.byID, s.id)

	s.mu.Lock()
	s.closed = true
	if s.rotationTimer != nil {
		s.rotationTimer.Stop()
		s.rotationTimer = nil
	}
	s.encKey.Wipe()
	s.authKey.Wipe()
	s.mu.Unlock()
}

// validLocked requires s.mu held.
func (m *sessionManager) validLocked(s *session) bool {
	if s.closed {
		return false
	}

	now := m.now()
	if now.Sub(s.createdAt) > maxSessionLifetime {
		return false
	}
	if now.Sub(s.lastUsedAt) > sessionIdleTimeout {
		return false
	}
	return true
}

func sessionInfo(s *session) SessionInfo {
	return SessionInfo{
		SessionID:          s.id,
		DeviceID:           s.deviceID,
		EphemeralPublicKey: s.ephemeralPublicKey,
		CreatedAt:          s.createdAt,
		LastUsedAt:         s.lastUsedAt,
	}
}
