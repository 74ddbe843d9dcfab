package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-sync/models"
)

const snapshotsTable = "manifest_snapshots"

// snapshotRepository is the sqlite-backed implementation of
// [SnapshotRepository]. The entry map is stored as a JSON blob; the
// checksum column duplicates the manifest checksum for cheap integrity
// checks without decoding the blob.
type snapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Get(ctx context.Context, vaultID, deviceID string) (models.SyncManifest, error) {
	query, args, err := sq.Select("vault_id", "device_id", "version", "entries", "checksum", "updated_at").
		From(snapshotsTable).
		Where(sq.Eq{"vault_id": vaultID, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return models.SyncManifest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		m          models.SyncManifest
		entriesRaw []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&m.VaultID, &m.DeviceID, &m.Version, &entriesRaw, &m.Checksum, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncManifest{}, ErrSnapshotNotFound
	}
	if err != nil {
		return models.SyncManifest{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal(entriesRaw, &m.Entries); err != nil {
		return models.SyncManifest{}, fmt.Errorf("decode snapshot entries: %w", err)
	}

	return m, nil
}

func (r *snapshotRepository) Save(ctx context.Context, manifest models.SyncManifest) error {
	entriesRaw, err := json.Marshal(manifest.Entries)
	if err != nil {
		return fmt.Errorf("encode snapshot entries: %w", err)
	}

	query, args, err := sq.Insert(snapshotsTable).
		Columns("vault_id", "device_id", "version", "entries", "checksum", "updated_at").
		Values(manifest.VaultID, manifest.DeviceID, manifest.Version, entriesRaw,
			manifest.Checksum, time.Now().UTC()).
		Suffix(`ON CONFLICT(vault_id, device_id) DO UPDATE SET
			version = excluded.version,
			entries = excluded.entries,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *snapshotRepository) Delete(ctx context.Context, vaultID, deviceID string) error {
	query, args, err := sq.Delete(snapshotsTable).
		Where(sq.Eq{"vault_id": vaultID, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrSnapshotNotFound)
}
