package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

// fakeDevices is an in-memory store.DeviceRepository.
type fakeDevices struct {
	devices map[string]models.Device
}

func newFakeDevices(devices ...models.Device) *fakeDevices {
	f := &fakeDevices{devices: make(map[string]models.Device)}
	for _, d := range devices {
		f.devices[d.ID] = d
	}
	return f
}

func (f *fakeDevices) Save(_ context.Context, device models.Device) error {
	f.devices[device.ID] = device
	return nil
}

func (f *fakeDevices) Get(_ context.Context, deviceID string) (models.Device, error) {
	d, ok := f.devices[deviceID]
	if !ok {
		return models.Device{}, store.ErrDeviceNotFound
	}
	return d, nil
}

func (f *fakeDevices) List(_ context.Context) ([]models.Device, error) {
	out := make([]models.Device, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDevices) UpdatePairingStatus(_ context.Context, deviceID string, status models.PairingStatus) error {
	d, ok := f.devices[deviceID]
	if !ok {
		return store.ErrDeviceNotFound
	}
	d.PairingStatus = status
	f.devices[deviceID] = d
	return nil
}

func (f *fakeDevices) Delete(_ context.Context, deviceID string) error {
	delete(f.devices, deviceID)
	return nil
}

// fakeVault is an in-memory VaultReader.
type fakeVault struct {
	entries map[string][]models.VaultEntry
	err     error
}

func (f *fakeVault) ListEntries(_ context.Context, vaultID string) ([]models.VaultEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[vaultID], nil
}

// fakeApplier records applied entries.
type fakeApplier struct {
	applied []models.SyncEntry
	err     error
}

func (f *fakeApplier) Apply(_ context.Context, _ string, entries []models.SyncEntry) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.applied = append(f.applied, entries...)
	return len(entries), nil
}

// loopbackTransport plays the responder role in-process: Handshake runs the
// peer's Accept, Sync decrypts the request with the peer's session and
// encrypts a canned response.
type loopbackTransport struct {
	t *testing.T

	initiator *peer
	responder *peer

	status    models.SyncStatus
	manifest  *models.SyncManifest
	conflicts []models.SyncConflict
	errorMsg  string

	echoRequestID func(string) string // identity unless overridden

	syncErr      error
	handshakeErr error

	handshakes atomic.Int32
	syncs      atomic.Int32

	block chan struct{} // when non-nil, Sync waits before answering
}

func (l *loopbackTransport) Handshake(_ context.Context, _ models.Device, req models.HandshakeRequest) (models.HandshakeResponse, error) {
	l.handshakes.Add(1)
	if l.handshakeErr != nil {
		return models.HandshakeResponse{}, l.handshakeErr
	}

	eph, err := base64.StdEncoding.DecodeString(req.EphemeralPublicKey)
	require.NoError(l.t, err)

	info, err := l.responder.manager.Accept(req.DeviceID, l.initiator.identity.PublicKey().Bytes(), eph)
	if err != nil {
		return models.HandshakeResponse{}, err
	}
	return models.HandshakeResponse{DeviceID: l.responder.deviceID, SessionID: info.SessionID}, nil
}

func (l *loopbackTransport) Sync(_ context.Context, _ models.Device, packet models.EncryptedPacket) (models.EncryptedPacket, error) {
	l.syncs.Add(1)
	if l.block != nil {
		<-l.block
	}
	if l.syncErr != nil {
		return models.EncryptedPacket{}, l.syncErr
	}

	var req models.SyncRequest
	require.NoError(l.t, l.responder.manager.Decrypt(packet.DeviceID, packet, &req))

	requestID := req.RequestID
	if l.echoRequestID != nil {
		requestID = l.echoRequestID(requestID)
	}

	resp := models.SyncResponse{
		RequestID: requestID,
		DeviceID:  l.responder.deviceID,
		Status:    l.status,
		Manifest:  l.manifest,
		Conflicts: l.conflicts,
		Error:     l.errorMsg,
	}
	return l.responder.manager.Encrypt(packet.DeviceID, resp)
}

type orchestratorFixture struct {
	orchestrator Orchestrator
	transport    *loopbackTransport
	snapshots    *fakeSnapshots
	vault        *fakeVault
	applier      *fakeApplier
	devices      *fakeDevices
	peerDevice   models.Device
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	initiator := newPeer(t, "device-a")
	responder := newPeer(t, "device-b")

	peerDevice := models.Device{
		ID:            responder.deviceID,
		DisplayName:   "Phone",
		Address:       "127.0.0.1",
		Port:          8484,
		PairingStatus: models.PairingPaired,
		PublicKey:     responder.identity.PublicKey().Bytes(),
	}

	transport := &loopbackTransport{
		t:         t,
		initiator: initiator,
		responder: responder,
		status:    models.StatusSuccess,
		manifest:  &models.SyncManifest{DeviceID: responder.deviceID, VaultID: "vault-1", Entries: map[string]models.SyncEntry{}},
	}

	snapshots := newFakeSnapshots()
	vault := &fakeVault{entries: map[string][]models.VaultEntry{}}
	applier := &fakeApplier{}
	devices := newFakeDevices(peerDevice)

	appCfg := config.App{DeviceID: initiator.deviceID}
	manifests := NewManifestService(snapshots, appCfg, logger.Nop())

	orchestrator := NewOrchestrator(
		initiator.manager,
		manifests,
		NewConflictService(5*time.Minute),
		transport,
		devices,
		vault,
		applier,
		appCfg,
		logger.Nop(),
	)

	return &orchestratorFixture{
		orchestrator: orchestrator,
		transport:    transport,
		snapshots:    snapshots,
		vault:        vault,
		applier:      applier,
		devices:      devices,
		peerDevice:   peerDevice,
	}
}

func TestSync_SuccessAppliesRemoteEntries(t *testing.T) {
	fx := newOrchestratorFixture(t)
	now := time.Now()

	fx.vault.entries["vault-1"] = []models.VaultEntry{
		vaultEntry("local-1", "local data", now),
	}
	fx.transport.manifest.Entries["remote-1"] = models.SyncEntry{
		ID: "remote-1", Action: models.ActionCreate, Timestamp: now, ContentHash: "remote-hash", SizeBytes: 11,
	}

	var phases []models.SyncPhase
	result, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync,
		func(phase models.SyncPhase, _ float64) { phases = append(phases, phase) })
	require.NoError(t, err)

	assert.Equal(t, models.ResultSuccess, result.Status)
	assert.Equal(t, 1, result.Applied)
	require.Len(t, fx.applier.applied, 1)
	assert.Equal(t, "remote-1", fx.applier.applied[0].ID)

	assert.Equal(t, []models.SyncPhase{
		models.PhasePreparing,
		models.PhaseConnecting,
		models.PhaseExchanging,
		models.PhaseResolving,
		models.PhaseCompleting,
		models.PhaseCompleted,
	}, phases)

	// The merged snapshot carries both the local and the applied entry.
	stored, err := fx.snapshots.Get(context.Background(), "vault-1", "device-b")
	require.NoError(t, err)
	assert.Contains(t, stored.Entries, "local-1")
	assert.Contains(t, stored.Entries, "remote-1")
}

func TestSync_ConflictHaltsWithoutApply(t *testing.T) {
	fx := newOrchestratorFixture(t)
	now := time.Now()

	fx.vault.entries["vault-1"] = []models.VaultEntry{
		vaultEntry("e1", "local version", now),
	}
	fx.transport.manifest.Entries["e1"] = models.SyncEntry{
		ID: "e1", Action: models.ActionUpdate, Timestamp: now.Add(time.Minute), ContentHash: "remote-hash",
	}
	fx.transport.status = models.StatusConflict

	result, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.IncrementalSync, nil)
	require.NoError(t, err)

	assert.Equal(t, models.ResultConflict, result.Status)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "e1", result.Conflicts[0].EntryID)
	assert.Equal(t, models.ConflictUpdateUpdate, result.Conflicts[0].Type)

	// Nothing applied, no snapshot written: the caller has to resolve first.
	assert.Empty(t, fx.applier.applied)
	_, err = fx.snapshots.Get(context.Background(), "vault-1", "device-b")
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
}

func TestSync_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   models.SyncStatus
		expected error
	}{
		{"unauthorized", models.StatusUnauthorized, adapter.ErrUnauthorized},
		{"not paired", models.StatusDeviceNotPaired, ErrNotPaired},
		{"vault not found", models.StatusVaultNotFound, ErrVaultNotFound},
		{"remote error", models.StatusError, ErrProtocol},
		{"unknown status", models.SyncStatus("bogus"), ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newOrchestratorFixture(t)
			fx.transport.status = tt.status
			fx.transport.errorMsg = "boom"

			result, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, models.ResultFailure, result.Status)
		})
	}
}

func TestSync_UnknownDevice(t *testing.T) {
	fx := newOrchestratorFixture(t)

	result, err := fx.orchestrator.Sync(context.Background(), "stranger", "vault-1", models.FullSync, nil)
	assert.ErrorIs(t, err, ErrNotPaired)
	assert.Equal(t, models.ResultFailure, result.Status)
	assert.Zero(t, fx.transport.handshakes.Load())
}

func TestSync_RevokedDevice(t *testing.T) {
	fx := newOrchestratorFixture(t)
	require.NoError(t, fx.devices.UpdatePairingStatus(context.Background(), "device-b", models.PairingRevoked))

	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	assert.ErrorIs(t, err, ErrNotPaired)
}

func TestSync_NetworkFailure(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.transport.syncErr = adapter.ErrNetwork

	var phases []models.SyncPhase
	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync,
		func(phase models.SyncPhase, _ float64) { phases = append(phases, phase) })
	assert.ErrorIs(t, err, adapter.ErrNetwork)
	assert.Equal(t, models.PhaseError, phases[len(phases)-1])
}

func TestSync_HandshakeFailureTearsDownSession(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.transport.handshakeErr = adapter.ErrNetwork

	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	assert.ErrorIs(t, err, adapter.ErrNetwork)

	// The half-open session was closed; the next attempt handshakes again.
	fx.transport.handshakeErr = nil
	_, err = fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fx.transport.handshakes.Load())
}

func TestSync_ReusesValidSession(t *testing.T) {
	fx := newOrchestratorFixture(t)

	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	require.NoError(t, err)
	_, err = fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 1, fx.transport.handshakes.Load())
	assert.EqualValues(t, 2, fx.transport.syncs.Load())
}

func TestSync_RequestIDMismatch(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.transport.echoRequestID = func(string) string { return "wrong-id" }

	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestSync_SingleFlightPerDeviceVault(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.transport.block = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	firstErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
		firstErr <- err
	}()

	// Wait for the first attempt to reach the blocked transport call.
	require.Eventually(t, func() bool { return fx.transport.syncs.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(fx.transport.block)
	wg.Wait()
	require.NoError(t, <-firstErr)

	// The slot is released once the attempt finishes.
	fx.transport.block = nil
	_, err = fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	assert.NoError(t, err)
}

func TestSync_VaultFailure(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.vault.err = errors.New("no such vault")

	_, err := fx.orchestrator.Sync(context.Background(), "device-b", "vault-1", models.FullSync, nil)
	assert.ErrorIs(t, err, ErrVaultNotFound)
}
