// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncAction classifies how a vault entry changed relative to the last
// synchronized snapshot of the same (vault, device) pair.
type SyncAction string

const (
	ActionCreate SyncAction = "create"
	ActionUpdate SyncAction = "update"
	ActionDelete SyncAction = "delete"
)

// SyncEntry is the content-addressed description of a single vault entry
// inside a manifest. It never carries plaintext vault data, only a hash.
type SyncEntry struct {
	// ID is the stable identifier of the vault entry.
	ID string `json:"id"`

	// Action is the change classification against the prior snapshot.
	Action SyncAction `json:"action"`

	// Timestamp is when the entry was last modified on the owning device.
	Timestamp time.Time `json:"timestamp"`

	// ContentHash is the hex-encoded SHA-256 digest of the entry bytes.
	ContentHash string `json:"content_hash"`

	// SizeBytes is the size of the entry payload in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// SyncManifest is a content-addressed summary of a vault's state as seen by
// one device. Two manifests are compared entry-by-entry to detect what
// changed since the last sync.
//
// Checksum is a pure function of Entries: it is computed over the canonical
// JSON encoding of the entry map, whose keys are serialized in sorted order,
// so neither map iteration nor insertion order ever affects the result.
type SyncManifest struct {
	DeviceID  string               `json:"device_id"`
	VaultID   string               `json:"vault_id"`
	Version   int64                `json:"version"`
	Timestamp time.Time            `json:"timestamp"`
	Entries   map[string]SyncEntry `json:"entries"`
	Checksum  string               `json:"checksum"`
}

// VaultEntry is the externally supplied shape of a single vault record used
// for manifest building. The vault layer owns storage and enumeration; the
// sync engine only ever sees opaque bytes.
type VaultEntry struct {
	// ID is the stable identifier of the entry inside its vault.
	ID string `json:"id"`

	// Data is the encrypted entry payload as stored by the vault layer.
	Data []byte `json:"data"`

	// UpdatedAt is the entry's last modification time.
	UpdatedAt time.Time `json:"updated_at"`
}
