// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

// manifestService is the concrete implementation of ManifestService. It
// owns nothing but the snapshot repository: vault entries come from the
// caller, and only their hashes ever enter a manifest.
type manifestService struct {
	snapshots store.SnapshotRepository

	// deviceID is the local device; every built manifest announces it as
	// its origin. Snapshots are keyed by the peer device instead.
	deviceID string

	logger *logger.Logger

	now func() time.Time
}

// NewManifestService constructs a ManifestService over the given snapshot
// repository.
func NewManifestService(snapshots store.SnapshotRepository, appCfg config.App, logger *logger.Logger) ManifestService {
	return &manifestService{
		snapshots: snapshots,
		deviceID:  appCfg.DeviceID,
		logger:    logger,
		now:       time.Now,
	}
}

// Build implements ManifestService.
func (s *manifestService) Build(ctx context.Context, peerDeviceID, vaultID string, entries []models.VaultEntry) (models.SyncManifest, error) {
	baseline, err := s.snapshots.Get(ctx, vaultID, peerDeviceID)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotNotFound) {
			return models.SyncManifest{}, fmt.Errorf("load snapshot: %w", err)
		}
		// First sync for this (vault, device) pair: empty baseline,
		// every live entry classifies as a create.
		baseline = models.SyncManifest{Entries: map[string]models.SyncEntry{}}
	}

	manifest := models.SyncManifest{
		DeviceID:  s.deviceID,
		VaultID:   vaultID,
		Version:   baseline.Version + 1,
		Timestamp: s.now(),
		Entries:   make(map[string]models.SyncEntry, len(entries)),
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return models.SyncManifest{}, err
		}

		hash := contentHash(entry.Data)
		seen[entry.ID] = struct{}{}

		prior, existed := baseline.Entries[entry.ID]
		switch {
		case !existed || prior.Action == models.ActionDelete:
			manifest.Entries[entry.ID] = models.SyncEntry{
				ID:          entry.ID,
				Action:      models.ActionCreate,
				Timestamp:   entry.UpdatedAt,
				ContentHash: hash,
				SizeBytes:   int64(len(entry.Data)),
			}
		case prior.ContentHash != hash:
			manifest.Entries[entry.ID] = models.SyncEntry{
				ID:          entry.ID,
				Action:      models.ActionUpdate,
				Timestamp:   entry.UpdatedAt,
				ContentHash: hash,
				SizeBytes:   int64(len(entry.Data)),
			}
		default:
			// Unchanged since the snapshot: carried forward as-is so
			// the peer can still diff against the full vault state.
			manifest.Entries[entry.ID] = prior
		}
	}

	// Entries in the prior snapshot that are gone from the vault now.
	for id, prior := range baseline.Entries {
		if _, stillPresent := seen[id]; stillPresent {
			continue
		}
		if prior.Action == models.ActionDelete {
			// Already tombstoned in the baseline; keep the tombstone.
			manifest.Entries[id] = prior
			continue
		}
		manifest.Entries[id] = models.SyncEntry{
			ID:          id,
			Action:      models.ActionDelete,
			Timestamp:   manifest.Timestamp,
			ContentHash: prior.ContentHash,
		}
	}

	checksum, err := s.Checksum(manifest.Entries)
	if err != nil {
		return models.SyncManifest{}, err
	}
	manifest.Checksum = checksum

	return manifest, nil
}

// Checksum implements ManifestService. encoding/json serializes map keys in
// sorted order, so the digest depends only on the entry values, never on
// insertion order.
func (s *manifestService) Checksum(entries map[string]models.SyncEntry) (string, error) {
	canonical, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("canonicalize entries: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// SaveSnapshot implements ManifestService. The stored record carries the
// peer device ID so the next Build for the same peer loads this baseline.
func (s *manifestService) SaveSnapshot(ctx context.Context, peerDeviceID string, manifest models.SyncManifest) error {
	snapshot := manifest
	snapshot.DeviceID = peerDeviceID

	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.logger.Debug().
		Str("vault_id", snapshot.VaultID).
		Str("peer_device_id", peerDeviceID).
		Int64("version", snapshot.Version).
		Msg("manifest snapshot saved")
	return nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
