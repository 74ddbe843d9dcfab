// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
)

const defaultQueueInterval = 60 * time.Second

// queueWorker drives the durable retry queue. It processes ready operations
// on a fixed tick and immediately after each enqueue notification, so a
// freshly queued sync does not wait for the next tick.
type queueWorker struct {
	ctx      context.Context
	queue    service.QueueService
	interval time.Duration

	logger *logger.Logger
}

func newQueueWorker(ctx context.Context, queue service.QueueService, interval time.Duration, logger *logger.Logger) *queueWorker {
	if interval <= 0 {
		interval = defaultQueueInterval
	}
	return &queueWorker{
		ctx:      ctx,
		queue:    queue,
		interval: interval,
		logger:   logger,
	}
}

func (w *queueWorker) Run() {
	go w.loop()
}

func (w *queueWorker) loop() {
	w.logger.Info().Dur("interval", w.interval).Msg("queue worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info().Msg("queue worker stopped")
			return
		case <-ticker.C:
		case <-w.queue.Notifications():
		}

		if err := w.queue.ProcessReady(w.ctx); err != nil && w.ctx.Err() == nil {
			w.logger.Err(err).Msg("error processing ready operations")
		}
	}
}
