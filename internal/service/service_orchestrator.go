// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// orchestrator is the concrete implementation of Orchestrator. One call to
// Sync walks the phase machine Preparing → Connecting → Exchanging →
// Resolving → Completing → Completed; Error is reachable from every
// non-terminal phase. Progress is reported through the caller's observer at
// each phase's fixed checkpoint.
type orchestrator struct {
	sessions  SessionManager
	manifests ManifestService
	conflicts ConflictService
	transport adapter.PeerAdapter
	devices   store.DeviceRepository
	vault     VaultReader
	applier   VaultApplier

	deviceID string

	uuid   *utils.UUIDGenerator
	logger *logger.Logger

	// inflight guards per-(device, vault) single flight: two attempts for
	// the same pair would race on the manifest snapshot.
	mu       sync.Mutex
	inflight map[string]struct{}

	now func() time.Time
}

// NewOrchestrator wires a sync Orchestrator from its collaborators.
func NewOrchestrator(
	sessions SessionManager,
	manifests ManifestService,
	conflicts ConflictService,
	transport adapter.PeerAdapter,
	devices store.DeviceRepository,
	vault VaultReader,
	applier VaultApplier,
	appCfg config.App,
	logger *logger.Logger,
) Orchestrator {
	return &orchestrator{
		sessions:  sessions,
		manifests: manifests,
		conflicts: conflicts,
		transport: transport,
		devices:   devices,
		vault:     vault,
		applier:   applier,
		deviceID:  appCfg.DeviceID,
		uuid:      utils.NewUUIDGenerator(),
		inflight:  make(map[string]struct{}),
		logger:    logger,
		now:       time.Now,
	}
}

// Sync implements Orchestrator.
func (o *orchestrator) Sync(ctx context.Context, deviceID, vaultID string, syncType models.SyncType, onProgress ProgressFunc) (models.SyncResult, error) {
	if err := o.acquire(deviceID, vaultID); err != nil {
		return models.FailureResult(err), err
	}
	defer o.release(deviceID, vaultID)

	result, err := o.run(ctx, deviceID, vaultID, syncType, onProgress)
	if err != nil {
		emit(onProgress, models.PhaseError, 0.0)
		o.logger.Warn().
			Err(err).
			Str("device_id", deviceID).
			Str("vault_id", vaultID).
			Msg("sync attempt failed")
		return models.FailureResult(err), err
	}

	return result, nil
}

func (o *orchestrator) run(ctx context.Context, deviceID, vaultID string, syncType models.SyncType, onProgress ProgressFunc) (models.SyncResult, error) {
	// Preparing: pairing check plus local manifest build.
	emit(onProgress, models.PhasePreparing, models.PhasePreparing.Progress())

	device, err := o.devices.Get(ctx, deviceID)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return models.SyncResult{}, fmt.Errorf("%w: unknown device %s", ErrNotPaired, deviceID)
		}
		return models.SyncResult{}, fmt.Errorf("load device: %w", err)
	}
	if !device.IsPaired() {
		return models.SyncResult{}, fmt.Errorf("%w: device %s is %s", ErrNotPaired, deviceID, device.PairingStatus)
	}

	entries, err := o.vault.ListEntries(ctx, vaultID)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrVaultNotFound, err)
	}

	localManifest, err := o.manifests.Build(ctx, deviceID, vaultID, entries)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("build manifest: %w", err)
	}

	// Connecting: make sure a live session exists, handshaking when not.
	emit(onProgress, models.PhaseConnecting, models.PhaseConnecting.Progress())

	if err = o.ensureSession(ctx, device); err != nil {
		return models.SyncResult{}, err
	}

	request := models.SyncRequest{
		RequestID: o.uuid.Generate(),
		DeviceID:  o.deviceID,
		VaultID:   vaultID,
		Manifest:  localManifest,
		Type:      syncType,
	}

	packet, err := o.sessions.Encrypt(deviceID, request)
	if err != nil {
		return models.SyncResult{}, err
	}

	reply, err := o.transport.Sync(ctx, device, packet)
	if err != nil {
		return models.SyncResult{}, err
	}
	// A response arriving after cancellation is discarded unapplied.
	if err = ctx.Err(); err != nil {
		return models.SyncResult{}, fmt.Errorf("%w: %w", adapter.ErrNetwork, err)
	}

	// Exchanging: decrypt and sanity-check the peer's response.
	emit(onProgress, models.PhaseExchanging, models.PhaseExchanging.Progress())

	var response models.SyncResponse
	if err = o.sessions.Decrypt(deviceID, reply, &response); err != nil {
		return models.SyncResult{}, err
	}
	if response.RequestID != request.RequestID {
		return models.SyncResult{}, fmt.Errorf("%w: response for request %q, want %q", ErrProtocol, response.RequestID, request.RequestID)
	}

	switch response.Status {
	case models.StatusSuccess, models.StatusConflict:
		// Fall through to resolution against the peer's manifest.
	case models.StatusUnauthorized:
		return models.SyncResult{}, fmt.Errorf("%w: peer reported unauthorized", adapter.ErrUnauthorized)
	case models.StatusDeviceNotPaired:
		return models.SyncResult{}, fmt.Errorf("%w: peer reported not paired", ErrNotPaired)
	case models.StatusVaultNotFound:
		return models.SyncResult{}, fmt.Errorf("%w: peer has no vault %s", ErrVaultNotFound, vaultID)
	case models.StatusError:
		return models.SyncResult{}, fmt.Errorf("%w: peer error: %s", ErrProtocol, response.Error)
	default:
		return models.SyncResult{}, fmt.Errorf("%w: unknown response status %q", ErrProtocol, response.Status)
	}
	if response.Manifest == nil {
		return models.SyncResult{}, fmt.Errorf("%w: %s response without manifest", ErrProtocol, response.Status)
	}

	// Resolving: detect simultaneous edits. Conflicts halt the attempt as
	// a normal outcome awaiting caller-supplied resolution.
	emit(onProgress, models.PhaseResolving, models.PhaseResolving.Progress())

	conflicts := o.conflicts.Detect(localManifest, *response.Manifest)
	conflicts = mergeConflicts(conflicts, response.Conflicts)
	if len(conflicts) > 0 {
		emit(onProgress, models.PhaseCompleted, models.PhaseCompleted.Progress())
		return models.ConflictResult(conflicts), nil
	}

	// Completing: apply accepted remote entries, persist the new baseline.
	emit(onProgress, models.PhaseCompleting, models.PhaseCompleting.Progress())

	toApply := entriesToApply(localManifest, *response.Manifest)
	applied := 0
	if len(toApply) > 0 {
		applied, err = o.applier.Apply(ctx, vaultID, toApply)
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("apply remote entries: %w", err)
		}
	}

	merged, err := o.mergeSnapshot(localManifest, toApply)
	if err != nil {
		return models.SyncResult{}, err
	}
	if err = o.manifests.SaveSnapshot(ctx, deviceID, merged); err != nil {
		return models.SyncResult{}, err
	}

	emit(onProgress, models.PhaseCompleted, models.PhaseCompleted.Progress())

	o.logger.Info().
		Str("device_id", deviceID).
		Str("vault_id", vaultID).
		Int("applied", applied).
		Msg("sync completed")
	return models.SuccessResult(applied), nil
}

// ensureSession reuses a valid session when one exists and performs a fresh
// handshake otherwise. A handshake transport failure tears the half-open
// session down so the next attempt starts clean.
func (o *orchestrator) ensureSession(ctx context.Context, device models.Device) error {
	if info, err := o.sessions.SessionFor(device.ID); err == nil && o.sessions.IsValid(info.SessionID) {
		return nil
	}

	info, err := o.sessions.Initiate(device.ID, device.PublicKey)
	if err != nil {
		return err
	}

	_, err = o.transport.Handshake(ctx, device, models.HandshakeRequest{
		DeviceID:           o.deviceID,
		EphemeralPublicKey: base64.StdEncoding.EncodeToString(info.EphemeralPublicKey),
	})
	if err != nil {
		_ = o.sessions.Close(info.SessionID)
		return err
	}

	return nil
}

// entriesToApply selects the remote entries the local vault should take:
// entries the local side has never seen, and entries whose remote edit
// strictly postdates the local one. Identical hashes need no action.
func entriesToApply(local, remote models.SyncManifest) []models.SyncEntry {
	var toApply []models.SyncEntry
	for id, remoteEntry := range remote.Entries {
		localEntry, exists := local.Entries[id]
		switch {
		case !exists:
			toApply = append(toApply, remoteEntry)
		case localEntry.ContentHash == remoteEntry.ContentHash:
		case remoteEntry.Timestamp.After(localEntry.Timestamp):
			toApply = append(toApply, remoteEntry)
		}
	}
	return toApply
}

// mergeSnapshot overlays the applied remote entries on the local manifest
// and recomputes the checksum; the result is the next sync's baseline.
func (o *orchestrator) mergeSnapshot(local models.SyncManifest, applied []models.SyncEntry) (models.SyncManifest, error) {
	merged := models.SyncManifest{
		DeviceID:  local.DeviceID,
		VaultID:   local.VaultID,
		Version:   local.Version,
		Timestamp: o.now(),
		Entries:   make(map[string]models.SyncEntry, len(local.Entries)+len(applied)),
	}
	for id, entry := range local.Entries {
		merged.Entries[id] = entry
	}
	for _, entry := range applied {
		merged.Entries[entry.ID] = entry
	}

	checksum, err := o.manifests.Checksum(merged.Entries)
	if err != nil {
		return models.SyncManifest{}, err
	}
	merged.Checksum = checksum
	return merged, nil
}

// mergeConflicts unions locally detected conflicts with the peer's reported
// ones, keyed by entry ID. Detection is deterministic, so overlapping
// entries describe the same winner and the local copy is kept.
func mergeConflicts(local, remote []models.SyncConflict) []models.SyncConflict {
	if len(remote) == 0 {
		return local
	}

	seen := make(map[string]struct{}, len(local))
	for _, c := range local {
		seen[c.EntryID] = struct{}{}
	}
	for _, c := range remote {
		if _, ok := seen[c.EntryID]; ok {
			continue
		}
		// The peer reports its own side as "local"; swap so the caller
		// always sees conflicts from this device's point of view.
		c.LocalEntry, c.RemoteEntry = c.RemoteEntry, c.LocalEntry
		local = append(local, c)
	}
	return local
}

func (o *orchestrator) acquire(deviceID, vaultID string) error {
	key := deviceID + "/" + vaultID

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inflight[key]; busy {
		return fmt.Errorf("%w: device %s vault %s", ErrSyncInProgress, deviceID, vaultID)
	}
	o.inflight[key] = struct{}{}
	return nil
}

func (o *orchestrator) release(deviceID, vaultID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inflight, deviceID+"/"+vaultID)
}

func emit(onProgress ProgressFunc, phase models.SyncPhase, progress float64) {
	if onProgress != nil {
		onProgress(phase, progress)
	}
}
