// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

const (
	defaultMaxRetries = 3
	baseBackoff       = 30 * time.Second
)

// queueService is the concrete implementation of QueueService. Every
// mutation is persisted before the call returns, so a crash mid-processing
// resumes from durable state; processing is idempotent by operation ID.
// Operations run sequentially inside ProcessReady, which together with the
// orchestrator's single-flight guard keeps two operations for the same
// (device, vault) pair from ever running concurrently.
type queueService struct {
	repo         store.QueueRepository
	orchestrator Orchestrator

	uuid   *utils.UUIDGenerator
	logger *logger.Logger

	notify chan struct{}

	mu        sync.Mutex
	recovered bool

	now func() time.Time
}

// NewQueueService constructs a QueueService over the given repository and
// orchestrator.
func NewQueueService(repo store.QueueRepository, orchestrator Orchestrator, logger *logger.Logger) QueueService {
	return &queueService{
		repo:         repo,
		orchestrator: orchestrator,
		uuid:         utils.NewUUIDGenerator(),
		logger:       logger,
		notify:       make(chan struct{}, 1),
		now:          time.Now,
	}
}

// Enqueue implements QueueService. The operation is durable before the
// notification fires.
func (q *queueService) Enqueue(ctx context.Context, op models.QueuedSyncOperation) (string, error) {
	if op.DeviceID == "" || op.VaultID == "" {
		return "", fmt.Errorf("%w: device and vault are required", ErrProtocol)
	}
	if op.ID == "" {
		op.ID = q.uuid.Generate()
	}
	if op.Type == "" {
		op.Type = models.IncrementalSync
	}
	if op.MaxRetries == 0 {
		op.MaxRetries = defaultMaxRetries
	}

	now := q.now()
	op.CreatedAt = now
	if op.ScheduledAt.IsZero() {
		op.ScheduledAt = now
	}
	op.Status = models.OperationQueued
	op.RetryCount = 0
	op.LastError = ""

	if err := q.repo.Insert(ctx, op); err != nil {
		return "", fmt.Errorf("enqueue operation: %w", err)
	}

	q.logger.Debug().
		Str("operation_id", op.ID).
		Str("device_id", op.DeviceID).
		Str("vault_id", op.VaultID).
		Msg("operation enqueued")

	// Non-blocking: a pending notification already triggers processing.
	select {
	case q.notify <- struct{}{}:
	default:
	}

	return op.ID, nil
}

// ProcessReady implements QueueService.
func (q *queueService) ProcessReady(ctx context.Context) error {
	if err := q.recoverInterrupted(ctx); err != nil {
		return fmt.Errorf("recover interrupted operations: %w", err)
	}

	ready, err := q.repo.ListReady(ctx, q.now())
	if err != nil {
		return fmt.Errorf("list ready operations: %w", err)
	}

	for _, op := range ready {
		if err = ctx.Err(); err != nil {
			return err
		}
		q.process(ctx, op)
	}
	return nil
}

// recoverInterrupted runs once per service lifetime, before the first
// processing pass. Operations left in processing status belong to a previous
// process that crashed mid-attempt; they are flipped back to retrying with an
// immediate schedule so the pass that follows resumes them. Attempts are
// idempotent by operation ID, so resuming an interrupted one is safe. The
// retry count is not touched: a crash is not a failed attempt.
func (q *queueService) recoverInterrupted(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.recovered {
		return nil
	}

	ops, err := q.repo.List(ctx)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if op.Status != models.OperationProcessing {
			continue
		}
		op.Status = models.OperationRetrying
		op.ScheduledAt = q.now()
		if err = q.repo.Update(ctx, op); err != nil {
			return err
		}
		q.logger.Warn().
			Str("operation_id", op.ID).
			Msg("interrupted operation requeued")
	}

	q.recovered = true
	return nil
}

// process runs one operation to its next durable state. Per-operation
// failures are recorded on the operation itself and never block the rest of
// the queue.
func (q *queueService) process(ctx context.Context, op models.QueuedSyncOperation) {
	op.Status = models.OperationProcessing
	if err := q.repo.Update(ctx, op); err != nil {
		q.logger.Err(err).Str("operation_id", op.ID).Msg("mark operation processing")
		return
	}

	result, err := q.orchestrator.Sync(ctx, op.DeviceID, op.VaultID, op.Type, nil)
	if err != nil {
		q.handleFailure(ctx, op, err)
		return
	}

	// Success and conflict are both terminal: a conflict awaits the
	// caller's resolution, re-running the same operation cannot help.
	if err = q.repo.Delete(ctx, op.ID); err != nil {
		q.logger.Err(err).Str("operation_id", op.ID).Msg("remove completed operation")
		return
	}

	q.logger.Info().
		Str("operation_id", op.ID).
		Str("status", string(models.OperationCompleted)).
		Str("result", string(result.Status)).
		Int("applied", result.Applied).
		Msg("operation completed")
}

func (q *queueService) handleFailure(ctx context.Context, op models.QueuedSyncOperation, cause error) {
	op.LastError = cause.Error()

	if !retryable(cause) || op.RetryCount >= op.MaxRetries {
		op.Status = models.OperationFailed
		if err := q.repo.Update(ctx, op); err != nil {
			q.logger.Err(err).Str("operation_id", op.ID).Msg("mark operation failed")
			return
		}
		q.logger.Warn().
			Str("operation_id", op.ID).
			Int("retry_count", op.RetryCount).
			Str("last_error", op.LastError).
			Msg("operation terminally failed")
		return
	}

	op.RetryCount++
	op.Status = models.OperationRetrying
	op.ScheduledAt = q.now().Add(backoff(op.RetryCount))
	if err := q.repo.Update(ctx, op); err != nil {
		q.logger.Err(err).Str("operation_id", op.ID).Msg("reschedule operation")
		return
	}

	q.logger.Debug().
		Str("operation_id", op.ID).
		Int("retry_count", op.RetryCount).
		Time("scheduled_at", op.ScheduledAt).
		Msg("operation rescheduled")
}

// Cancel implements QueueService.
func (q *queueService) Cancel(ctx context.Context, operationID string) error {
	op, err := q.repo.Get(ctx, operationID)
	if err != nil {
		return err
	}

	switch op.Status {
	case models.OperationQueued, models.OperationRetrying, models.OperationFailed:
		if err = q.repo.Delete(ctx, operationID); err != nil {
			return err
		}
		q.logger.Debug().
			Str("operation_id", operationID).
			Str("status", string(models.OperationCancelled)).
			Msg("operation cancelled")
		return nil
	default:
		return fmt.Errorf("%w: operation %s is %s", ErrOperationNotCancellable, operationID, op.Status)
	}
}

// List implements QueueService.
func (q *queueService) List(ctx context.Context) ([]models.QueuedSyncOperation, error) {
	return q.repo.List(ctx)
}

// Notifications implements QueueService.
func (q *queueService) Notifications() <-chan struct{} {
	return q.notify
}

// retryable reports whether another attempt can plausibly succeed without
// user action: transient network failures, an expired or missing session
// (next attempt handshakes fresh), or a concurrent attempt holding the
// single-flight slot. Authentication, pairing and protocol failures need
// the user.
func retryable(err error) bool {
	return errors.Is(err, adapter.ErrNetwork) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSyncInProgress)
}

// backoff is the exponential retry delay: 30s, 60s, 120s, ...
func backoff(retryCount int) time.Duration {
	return baseBackoff << (retryCount - 1)
}
