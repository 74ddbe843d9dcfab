package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-sync/models"
)

const devicesTable = "devices"

var deviceColumns = []string{
	"id", "display_name", "address", "port", "pairing_status",
	"public_key", "created_at", "updated_at",
}

// deviceRepository is the sqlite-backed implementation of [DeviceRepository].
type deviceRepository struct {
	db *DB
}

func NewDeviceRepository(db *DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// Save inserts the device or, if a record with the same ID exists, replaces
// its mutable fields. Discovery re-announcements therefore refresh address
// and port without disturbing pairing status history.
func (r *deviceRepository) Save(ctx context.Context, device models.Device) error {
	now := time.Now().UTC()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	device.UpdatedAt = now

	query, args, err := sq.Insert(devicesTable).
		Columns(deviceColumns...).
		Values(device.ID, device.DisplayName, device.Address, device.Port,
			device.PairingStatus, device.PublicKey, device.CreatedAt, device.UpdatedAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			address = excluded.address,
			port = excluded.port,
			pairing_status = excluded.pairing_status,
			public_key = excluded.public_key,
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

func (r *deviceRepository) Get(ctx context.Context, deviceID string) (models.Device, error) {
	query, args, err := sq.Select(deviceColumns...).
		From(devicesTable).
		Where(sq.Eq{"id": deviceID}).
		ToSql()
	if err != nil {
		return models.Device{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var d models.Device
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&d.ID, &d.DisplayName, &d.Address, &d.Port, &d.PairingStatus,
		&d.PublicKey, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		return models.Device{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return d, nil
}

func (r *deviceRepository) List(ctx context.Context) ([]models.Device, error) {
	query, args, err := sq.Select(deviceColumns...).
		From(devicesTable).
		OrderBy("display_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var d models.Device
		if err = rows.Scan(&d.ID, &d.DisplayName, &d.Address, &d.Port,
			&d.PairingStatus, &d.PublicKey, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		devices = append(devices, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return devices, nil
}

func (r *deviceRepository) UpdatePairingStatus(ctx context.Context, deviceID string, status models.PairingStatus) error {
	query, args, err := sq.Update(devicesTable).
		Set("pairing_status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrDeviceNotFound)
}

func (r *deviceRepository) Delete(ctx context.Context, deviceID string) error {
	query, args, err := sq.Delete(devicesTable).
		Where(sq.Eq{"id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrDeviceNotFound)
}
