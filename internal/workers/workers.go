package workers

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers of the sync daemon. All
// workers stop when ctx is cancelled.
func NewWorkers(ctx context.Context, queue service.QueueService, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newQueueWorker(ctx, queue, cfg.QueueInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
