// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

const queueTable = "sync_queue"

var queueColumns = []string{
	"id", "device_id", "vault_id", "type", "payload", "priority",
	"created_at", "scheduled_at", "retry_count", "max_retries",
	"last_error", "status",
}

// queueRepository is the sqlite-backed implementation of [QueueRepository].
type queueRepository struct {
	db *DB
}

func NewQueueRepository(db *DB) QueueRepository {
	return &queueRepository{db: db}
}

func (r *queueRepository) Insert(ctx context.Context, op models.QueuedSyncOperation) error {
	query, args, err := sq.Insert(queueTable).
		Columns(queueColumns...).
		Values(op.ID, op.DeviceID, op.VaultID, op.Type, op.Payload, op.Priority,
			op.CreatedAt, op.ScheduledAt, op.RetryCount, op.MaxRetries,
			op.LastError, op.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *queueRepository) Update(ctx context.Context, op models.QueuedSyncOperation) error {
	query, args, err := sq.Update(queueTable).
		Set("scheduled_at", op.ScheduledAt).
		Set("retry_count", op.RetryCount).
		Set("last_error", op.LastError).
		Set("status", op.Status).
		Set("priority", op.Priority).
		Where(sq.Eq{"id": op.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrOperationNotFound)
}

func (r *queueRepository) Delete(ctx context.Context, operationID string) error {
	query, args, err := sq.Delete(queueTable).
		Where(sq.Eq{"id": operationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrOperationNotFound)
}

func (r *queueRepository) Get(ctx context.Context, operationID string) (models.QueuedSyncOperation, error) {
	query, args, err := sq.Select(queueColumns...).
		From(queueTable).
		Where(sq.Eq{"id": operationID}).
		ToSql()
	if err != nil {
		return models.QueuedSyncOperation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	op, err := scanOperation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.QueuedSyncOperation{}, ErrOperationNotFound
	}
	if err != nil {
		return models.QueuedSyncOperation{}, err
	}

	return op, nil
}

func (r *queueRepository) ListReady(ctx context.Context, now time.Time) ([]models.QueuedSyncOperation, error) {
	query, args, err := sq.Select(queueColumns...).
		From(queueTable).
		Where(sq.Eq{"status": []models.OperationStatus{models.OperationQueued, models.OperationRetrying}}).
		Where(sq.LtOrEq{"scheduled_at": now}).
		OrderBy("priority DESC", "scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOperations(ctx, query, args...)
}

func (r *queueRepository) List(ctx context.Context) ([]models.QueuedSyncOperation, error) {
	query, args, err := sq.Select(queueColumns...).
		From(queueTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOperations(ctx, query, args...)
}

func (r *queueRepository) queryOperations(ctx context.Context, query string, args ...any) ([]models.QueuedSyncOperation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ops []models.QueuedSyncOperation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ops, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (models.QueuedSyncOperation, error) {
	var op models.QueuedSyncOperation
	err := row.Scan(&op.ID, &op.DeviceID, &op.VaultID, &op.Type, &op.Payload,
		&op.Priority, &op.CreatedAt, &op.ScheduledAt, &op.RetryCount,
		&op.MaxRetries, &op.LastError, &op.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QueuedSyncOperation{}, err
		}
		return models.QueuedSyncOperation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return op, nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
