// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
)

// conflictService is the concrete implementation of ConflictService. The
// comparison is purely in-memory and stateless apart from the configured
// skew window.
type conflictService struct {
	skewWindow time.Duration
}

// NewConflictService constructs a ConflictService with the given skew
// window. Two edits of the same entry whose timestamps fall within the
// window count as simultaneous.
func NewConflictService(skewWindow time.Duration) ConflictService {
	return &conflictService{skewWindow: skewWindow}
}

// Detect implements ConflictService.
//
// A conflict requires both manifests to carry the entry with differing
// content hashes and timestamps inside the skew window. Outside the window
// the later edit strictly precedes, so the apply path resolves it without a
// conflict. One-sided entries pass straight through to apply.
func (s *conflictService) Detect(local, remote models.SyncManifest) []models.SyncConflict {
	var conflicts []models.SyncConflict

	for id, localEntry := range local.Entries {
		remoteEntry, onBothSides := remote.Entries[id]
		if !onBothSides {
			continue
		}
		if localEntry.ContentHash == remoteEntry.ContentHash {
			continue
		}

		delta := localEntry.Timestamp.Sub(remoteEntry.Timestamp)
		if delta < 0 {
			delta = -delta
		}
		if delta > s.skewWindow {
			continue
		}

		conflicts = append(conflicts, models.SyncConflict{
			EntryID:             id,
			LocalEntry:          localEntry,
			RemoteEntry:         remoteEntry,
			Type:                models.ConflictUpdateUpdate,
			SuggestedResolution: models.ResolutionLastWriterWins,
			WinnerDeviceID:      winner(local, remote, localEntry, remoteEntry),
		})
	}

	return conflicts
}

// winner applies the deterministic last-writer-wins total order: later
// timestamp first, ties broken by lexicographically smaller device ID.
// Both peers compute the identical winner because the order involves no
// local state.
func winner(local, remote models.SyncManifest, localEntry, remoteEntry models.SyncEntry) string {
	switch {
	case localEntry.Timestamp.After(remoteEntry.Timestamp):
		return local.DeviceID
	case remoteEntry.Timestamp.After(localEntry.Timestamp):
		return remote.DeviceID
	case local.DeviceID < remote.DeviceID:
		return local.DeviceID
	default:
		return remote.DeviceID
	}
}
