package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DeviceRepository is the durable pairing store. Devices are created on
// discovery and promoted to "paired" by explicit user action.
type DeviceRepository interface {
	Save(ctx context.Context, device models.Device) error
	Get(ctx context.Context, deviceID string) (models.Device, error)
	List(ctx context.Context) ([]models.Device, error)
	UpdatePairingStatus(ctx context.Context, deviceID string, status models.PairingStatus) error
	Delete(ctx context.Context, deviceID string) error
}

// QueueRepository persists queued sync operations. Every mutation is
// durable before the call returns, so a crash mid-processing resumes from
// the stored state on restart.
type QueueRepository interface {
	Insert(ctx context.Context, op models.QueuedSyncOperation) error
	Update(ctx context.Context, op models.QueuedSyncOperation) error
	Delete(ctx context.Context, operationID string) error
	Get(ctx context.Context, operationID string) (models.QueuedSyncOperation, error)

	// ListReady returns operations in queued or retrying status with
	// scheduled_at ≤ now, ordered by (priority desc, scheduled_at asc).
	ListReady(ctx context.Context, now time.Time) ([]models.QueuedSyncOperation, error)

	List(ctx context.Context) ([]models.QueuedSyncOperation, error)
}

// SnapshotRepository persists the last synchronized manifest per
// (vault, device) pair. The snapshot is the baseline against which the next
// manifest classifies creates, updates and deletes.
type SnapshotRepository interface {
	Get(ctx context.Context, vaultID, deviceID string) (models.SyncManifest, error)
	Save(ctx context.Context, manifest models.SyncManifest) error
	Delete(ctx context.Context, vaultID, deviceID string) error
}

// Repositories aggregates all durable repositories backed by one database.
type Repositories struct {
	Devices   DeviceRepository
	Queue     QueueRepository
	Snapshots SnapshotRepository
}
