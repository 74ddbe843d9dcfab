// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-vault-sync/models"
)

// fsVault is the filesystem contract between the sync engine and the
// external vault application: one subdirectory per vault, one file per
// entry. The engine hashes entry bytes but never interprets them.
//
// Accepted remote changes are appended to <vaultID>.pending as JSON lines;
// the vault application consumes the journal, fetches the payloads, and
// truncates it. Entry payload transfer happens outside the sync engine.
type fsVault struct {
	root string
}

func newFSVault(root string) *fsVault {
	return &fsVault{root: root}
}

// ListEntries implements service.VaultReader.
func (v *fsVault) ListEntries(ctx context.Context, vaultID string) ([]models.VaultEntry, error) {
	dir := filepath.Join(v.root, vaultID)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vault directory %s: %w", vaultID, err)
	}

	var entries []models.VaultEntry
	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if f.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read vault entry %s: %w", f.Name(), err)
		}
		info, err := f.Info()
		if err != nil {
			return nil, fmt.Errorf("stat vault entry %s: %w", f.Name(), err)
		}

		entries = append(entries, models.VaultEntry{
			ID:        f.Name(),
			Data:      data,
			UpdatedAt: info.ModTime(),
		})
	}

	return entries, nil
}

// Apply implements service.VaultApplier.
func (v *fsVault) Apply(_ context.Context, vaultID string, entries []models.SyncEntry) (int, error) {
	journal := filepath.Join(v.root, vaultID+".pending")
	f, err := os.OpenFile(journal, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, fmt.Errorf("open pending journal: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, entry := range entries {
		if err = enc.Encode(entry); err != nil {
			return 0, fmt.Errorf("append pending entry %s: %w", entry.ID, err)
		}
	}

	return len(entries), nil
}
