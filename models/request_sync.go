// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is the explicit outcome code carried in a SyncResponse. Each
// value maps to a distinct caller reaction (retry later, resolve conflicts,
// re-pair), never a generic failure.
type SyncStatus string

const (
	StatusSuccess         SyncStatus = "success"
	StatusConflict        SyncStatus = "conflict"
	StatusError           SyncStatus = "error"
	StatusUnauthorized    SyncStatus = "unauthorized"
	StatusVaultNotFound   SyncStatus = "vault_not_found"
	StatusDeviceNotPaired SyncStatus = "device_not_paired"
)

// HandshakeRequest opens a session: the initiator sends its identity and a
// fresh ephemeral public key. The responder combines the ephemeral key with
// its own long-term private key to derive the same session keys the
// initiator derived from the responder's long-term public key.
type HandshakeRequest struct {
	// DeviceID is the initiating device's identifier.
	DeviceID string `json:"device_id"`

	// EphemeralPublicKey is the initiator's fresh P-256 public key in
	// uncompressed point form, base64 standard encoding.
	EphemeralPublicKey string `json:"ephemeral_public_key"`
}

// HandshakeResponse acknowledges an accepted handshake.
type HandshakeResponse struct {
	// DeviceID is the responding device's identifier.
	DeviceID string `json:"device_id"`

	// SessionID is the responder-side identifier of the new session.
	SessionID string `json:"session_id"`
}

// SyncRequest is the plaintext inner message the initiator encrypts into the
// outer EncryptedPacket. It carries the full local manifest so the responder
// can diff both vault states in a single exchange.
type SyncRequest struct {
	// RequestID correlates the response with the request (UUID).
	RequestID string `json:"request_id"`

	// DeviceID is the initiating device's identifier.
	DeviceID string `json:"device_id"`

	// VaultID is the vault being synchronized.
	VaultID string `json:"vault_id"`

	// Manifest is the initiator's current manifest for VaultID.
	Manifest SyncManifest `json:"manifest"`

	// Type selects full or incremental synchronization.
	Type SyncType `json:"type"`
}

// SyncResponse is the plaintext inner message of the responder's reply.
// Manifest and Conflicts are populated depending on Status.
type SyncResponse struct {
	// RequestID echoes the request's correlation ID.
	RequestID string `json:"request_id"`

	// DeviceID is the responding device's identifier.
	DeviceID string `json:"device_id"`

	// Status is the explicit outcome code.
	Status SyncStatus `json:"status"`

	// Manifest is the responder's manifest for the requested vault.
	// Present for success and conflict statuses.
	Manifest *SyncManifest `json:"manifest,omitempty"`

	// Conflicts lists simultaneous-edit divergences the responder
	// detected. Present for the conflict status.
	Conflicts []SyncConflict `json:"conflicts,omitempty"`

	// Error is a human-readable message for the error status.
	Error string `json:"error,omitempty"`
}
