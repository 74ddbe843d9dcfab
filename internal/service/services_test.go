// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

// newTestServices wires the full service layer over gomock repositories and
// a mocked peer transport.
func newTestServices(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*service.Services,
	*store.Repositories,
	*mock.MockPeerAdapter,
	*mock.MockVaultReader,
) {
	t.Helper()

	identity, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	repos := &store.Repositories{
		Devices:   mock.NewMockDeviceRepository(ctrl),
		Queue:     mock.NewMockQueueRepository(ctrl),
		Snapshots: mock.NewMockSnapshotRepository(ctrl),
	}
	transport := mock.NewMockPeerAdapter(ctrl)
	vault := mock.NewMockVaultReader(ctrl)
	applier := mock.NewMockVaultApplier(ctrl)

	cfg := &config.StructuredConfig{
		App: config.App{
			DeviceID:   "laptop-1",
			PairingKey: "pairing-key",
			SkewWindow: 5 * time.Minute,
		},
	}

	services := service.NewServices(repos, transport, vault, applier, identity, cfg, logger.Nop())
	t.Cleanup(services.Stop)

	return services, repos, transport, vault
}

func TestServices_EnqueuePersistsOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, repos, _, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	queueRepo := repos.Queue.(*mock.MockQueueRepository)
	queueRepo.EXPECT().
		Insert(ctx, gomock.AssignableToTypeOf(models.QueuedSyncOperation{})).
		DoAndReturn(func(_ context.Context, op models.QueuedSyncOperation) error {
			assert.NotEmpty(t, op.ID)
			assert.Equal(t, "desktop-1", op.DeviceID)
			assert.Equal(t, "vault-1", op.VaultID)
			assert.Equal(t, models.OperationQueued, op.Status)
			return nil
		})

	id, err := services.Queue.Enqueue(ctx, models.QueuedSyncOperation{
		DeviceID: "desktop-1",
		VaultID:  "vault-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestServices_CancelQueuedOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, repos, _, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	queueRepo := repos.Queue.(*mock.MockQueueRepository)
	queueRepo.EXPECT().
		Get(ctx, "op-1").
		Return(models.QueuedSyncOperation{ID: "op-1", Status: models.OperationQueued}, nil)
	queueRepo.EXPECT().Delete(ctx, "op-1").Return(nil)

	require.NoError(t, services.Queue.Cancel(ctx, "op-1"))
}

func TestServices_SyncNetworkFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, repos, transport, vault := newTestServices(t, ctrl)
	ctx := context.Background()

	peerIdentity, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	peer := models.Device{
		ID:            "desktop-1",
		PairingStatus: models.PairingPaired,
		PublicKey:     peerIdentity.PublicKey().Bytes(),
	}

	devices := repos.Devices.(*mock.MockDeviceRepository)
	devices.EXPECT().Get(ctx, "desktop-1").Return(peer, nil)

	vault.EXPECT().ListEntries(ctx, "vault-1").Return(nil, nil)

	snapshots := repos.Snapshots.(*mock.MockSnapshotRepository)
	snapshots.EXPECT().
		Get(ctx, "vault-1", "desktop-1").
		Return(models.SyncManifest{}, store.ErrSnapshotNotFound)

	transport.EXPECT().
		Handshake(ctx, peer, gomock.AssignableToTypeOf(models.HandshakeRequest{})).
		Return(models.HandshakeResponse{DeviceID: "desktop-1", SessionID: "session-1"}, nil)
	transport.EXPECT().
		Sync(ctx, peer, gomock.AssignableToTypeOf(models.EncryptedPacket{})).
		Return(models.EncryptedPacket{}, adapter.ErrNetwork)

	result, err := services.Orchestrator.Sync(ctx, "desktop-1", "vault-1", models.IncrementalSync, nil)

	require.ErrorIs(t, err, adapter.ErrNetwork)
	assert.Equal(t, models.ResultFailure, result.Status)
}
