// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OperationStatus is the lifecycle state of a queued sync operation.
//
// Transitions form a DAG:
//
//	queued → processing → completed
//	                    → retrying → queued (reschedule)
//	                    → failed
//	queued → cancelled
//
// A completed or cancelled operation never re-enters the queue.
type OperationStatus string

const (
	OperationQueued     OperationStatus = "queued"
	OperationProcessing OperationStatus = "processing"
	OperationRetrying   OperationStatus = "retrying"
	OperationCompleted  OperationStatus = "completed"
	OperationFailed     OperationStatus = "failed"
	OperationCancelled  OperationStatus = "cancelled"
)

// SyncType selects how much of the vault a sync attempt covers.
type SyncType string

const (
	// FullSync exchanges the complete manifest of the vault.
	FullSync SyncType = "full_sync"

	// IncrementalSync exchanges only entries changed since the last
	// stored snapshot.
	IncrementalSync SyncType = "incremental_sync"
)

// QueuedSyncOperation is a durable record of a pending sync attempt.
// Created by a caller requesting sync, mutated only by the retry queue,
// removed on terminal success or explicit cancellation.
type QueuedSyncOperation struct {
	// ID is the unique operation identifier assigned at enqueue time.
	// Queue processing is idempotent by this ID.
	ID string `json:"id"`

	// DeviceID is the peer device to synchronize with.
	DeviceID string `json:"device_id"`

	// VaultID is the vault to synchronize.
	VaultID string `json:"vault_id"`

	// Type selects full or incremental synchronization.
	Type SyncType `json:"type"`

	// Payload carries optional opaque caller data returned with results.
	Payload []byte `json:"payload,omitempty"`

	// Priority orders ready operations; higher runs first.
	Priority int `json:"priority"`

	// CreatedAt is when the operation was enqueued.
	CreatedAt time.Time `json:"created_at"`

	// ScheduledAt is the earliest time the operation may run. Pushed into
	// the future by exponential backoff after each retryable failure.
	ScheduledAt time.Time `json:"scheduled_at"`

	// RetryCount is the number of failed attempts so far. Monotonically
	// non-decreasing until the operation is removed.
	RetryCount int `json:"retry_count"`

	// MaxRetries caps RetryCount; once reached the operation becomes
	// terminally failed and is kept for manual inspection.
	MaxRetries int `json:"max_retries"`

	// LastError is the message of the most recent failure, empty on the
	// first attempt.
	LastError string `json:"last_error,omitempty"`

	// Status is the current lifecycle state.
	Status OperationStatus `json:"status"`
}
