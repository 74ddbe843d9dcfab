// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConflictType classifies a non-mergeable divergence between two manifests.
type ConflictType string

const (
	// ConflictUpdateUpdate means both devices modified the same entry
	// within the skew window, so neither edit strictly precedes the other.
	ConflictUpdateUpdate ConflictType = "update_update"
)

// ConflictResolution names a strategy for resolving a conflict. The engine
// only ever suggests a resolution; callers must confirm it (or pick another)
// before the conflicting entry is applied.
type ConflictResolution string

const (
	// ResolutionLastWriterWins keeps the entry with the later timestamp,
	// tie-broken by lexicographically smaller device ID so that both peers
	// compute the identical winner independently.
	ResolutionLastWriterWins ConflictResolution = "last_writer_wins"

	// ResolutionAcceptLocal keeps the local entry unconditionally.
	ResolutionAcceptLocal ConflictResolution = "accept_local"

	// ResolutionAcceptRemote keeps the remote entry unconditionally.
	ResolutionAcceptRemote ConflictResolution = "accept_remote"

	// ResolutionManualMerge defers to the user to merge both versions.
	ResolutionManualMerge ConflictResolution = "manual_merge"
)

// SyncConflict describes a simultaneous-edit divergence for one entry.
// Conflicts are result values, not errors: a sync attempt that produces
// conflicts is a normal outcome awaiting caller-supplied resolution.
type SyncConflict struct {
	EntryID             string             `json:"entry_id"`
	LocalEntry          SyncEntry          `json:"local_entry"`
	RemoteEntry         SyncEntry          `json:"remote_entry"`
	Type                ConflictType       `json:"type"`
	SuggestedResolution ConflictResolution `json:"suggested_resolution"`

	// WinnerDeviceID is the device whose entry the suggested resolution
	// keeps. Deterministic: both peers compute the same value.
	WinnerDeviceID string `json:"winner_device_id"`
}
