// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionManager owns the session table: ephemeral key exchange, session
// lifecycle, periodic key rotation, and the authenticated transport codec.
// All key material lives only in memory and is wiped on replacement or close.
type SessionManager interface {
	// Initiate opens a session with a peer as the initiating side. It
	// generates a fresh ephemeral P-256 key pair, agrees on a shared
	// secret with the peer's long-term public key, and derives the session
	// keys. Any pre-existing session for deviceID is closed and its keys
	// erased first. The returned info carries the ephemeral public key to
	// send in the handshake request.
	Initiate(deviceID string, peerLongTermPublicKey []byte) (SessionInfo, error)

	// Accept opens a session as the responding side, agreeing on the same
	// shared secret from this device's long-term private key and the
	// initiator's ephemeral public key. peerLongTermPublicKey must be the
	// pairing-store key for deviceID; it is validated as a curve point so a
	// corrupted pairing record fails here rather than at first decrypt.
	Accept(deviceID string, peerLongTermPublicKey, peerEphemeralPublicKey []byte) (SessionInfo, error)

	// Rotate replaces the session keys with fresh ones derived from the
	// current encryption key, a random salt, and a counter-distinguished
	// info string. Old key bytes are wiped before replacement.
	Rotate(sessionID string) error

	// IsValid reports whether the session exists and is inside both its
	// maximum lifetime and idle timeout.
	IsValid(sessionID string) bool

	// SessionFor returns the active session info for a peer device, or
	// ErrSessionNotFound.
	SessionFor(deviceID string) (SessionInfo, error)

	// Close removes the session and wipes its key buffers. Closing cancels
	// the pending rotation timer. Closing an unknown session is a no-op.
	Close(sessionID string) error

	// Encrypt serializes message to JSON and seals it into an encrypted
	// packet under the session keys for deviceID. Updates the session's
	// last-used time.
	Encrypt(deviceID string, message any) (models.EncryptedPacket, error)

	// Decrypt authenticates and opens packet with the session keys for
	// deviceID, then deserializes the plaintext into out. A tampered
	// packet fails with crypto.ErrAuthenticationFailed before any
	// decryption is attempted.
	Decrypt(deviceID string, packet models.EncryptedPacket, out any) error

	// Stop closes every session and cancels all rotation timers.
	Stop()
}

// SessionInfo is the externally visible description of a session. It never
// carries key material.
type SessionInfo struct {
	SessionID          string
	DeviceID           string
	EphemeralPublicKey []byte
	CreatedAt          time.Time
	LastUsedAt         time.Time
}

// ManifestService builds content-addressed manifests of vault state and
// persists snapshots per (vault, peer device) pair. The snapshot is the
// last state agreed with that peer; the built manifest always announces the
// local device as its origin.
type ManifestService interface {
	// Build classifies every entry against the stored snapshot for
	// (vaultID, peerDeviceID): create if unseen, update if the content
	// hash differs, delete for entries present in the snapshot but absent
	// now. With no snapshot the baseline is empty and every entry is a
	// create.
	Build(ctx context.Context, peerDeviceID, vaultID string, entries []models.VaultEntry) (models.SyncManifest, error)

	// Checksum computes the order-independent checksum of an entry map.
	Checksum(entries map[string]models.SyncEntry) (string, error)

	// SaveSnapshot persists manifest as the new baseline for
	// (manifest.VaultID, peerDeviceID).
	SaveSnapshot(ctx context.Context, peerDeviceID string, manifest models.SyncManifest) error
}

// ConflictService compares two manifests and flags simultaneous-edit
// divergences. Conflicts are result values, never errors.
type ConflictService interface {
	// Detect returns one conflict per entry present in both manifests with
	// differing content hashes and timestamps inside the skew window.
	// Entries present in only one manifest are not conflicts.
	Detect(local, remote models.SyncManifest) []models.SyncConflict
}

// ProgressFunc observes sync phase transitions. Progress is emitted at the
// fixed checkpoints of models.SyncPhase.
type ProgressFunc func(phase models.SyncPhase, progress float64)

// Orchestrator drives one sync attempt end to end: manifest build, session
// establishment, encrypted exchange, conflict detection, apply, snapshot
// update.
type Orchestrator interface {
	// Sync runs one attempt against the paired device. The returned result
	// distinguishes success, conflicts awaiting resolution, and failure;
	// the error (when non-nil) classifies the failure for retry decisions.
	// onProgress may be nil.
	Sync(ctx context.Context, deviceID, vaultID string, syncType models.SyncType, onProgress ProgressFunc) (models.SyncResult, error)
}

// VaultReader is the external vault layer's enumeration hook. The sync
// engine never stores vault entries itself.
type VaultReader interface {
	// ListEntries returns all entries of the vault, raw encrypted payloads
	// included; the engine only ever hashes them.
	ListEntries(ctx context.Context, vaultID string) ([]models.VaultEntry, error)
}

// VaultApplier is the external vault layer's write hook.
type VaultApplier interface {
	// Apply applies accepted remote entries to the local vault and returns
	// the number of entries applied.
	Apply(ctx context.Context, vaultID string, entries []models.SyncEntry) (int, error)
}

// QueueService is the durable offline retry queue driving sync attempts.
type QueueService interface {
	// Enqueue persists the operation and triggers processing. Returns the
	// assigned operation ID.
	Enqueue(ctx context.Context, op models.QueuedSyncOperation) (string, error)

	// ProcessReady runs every operation whose scheduled time has come, in
	// (priority desc, scheduled time asc) order, invoking the Orchestrator
	// once per operation.
	ProcessReady(ctx context.Context) error

	// Cancel removes a queued or retrying operation. An operation that is
	// already processing or terminal cannot be cancelled.
	Cancel(ctx context.Context, operationID string) error

	// List returns all persisted operations, terminal failures included.
	List(ctx context.Context) ([]models.QueuedSyncOperation, error)

	// Notifications signals after each enqueue so the queue worker can
	// process immediately instead of waiting for the next tick.
	Notifications() <-chan struct{}
}
