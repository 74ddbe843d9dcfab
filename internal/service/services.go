package service

import (
	"crypto/ecdh"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
)

// Services aggregates the sync engine's service layer.
type Services struct {
	Sessions     SessionManager
	Manifests    ManifestService
	Conflicts    ConflictService
	Orchestrator Orchestrator
	Queue        QueueService
}

// NewServices wires the full service layer: session management over the
// device identity key, manifest building over the snapshot store, conflict
// detection, the sync orchestrator, and the durable retry queue.
func NewServices(
	repos *store.Repositories,
	transport adapter.PeerAdapter,
	vault VaultReader,
	applier VaultApplier,
	identity *ecdh.PrivateKey,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	sessions := NewSessionManager(crypto.NewKeyring(), identity, cfg.App, cfg.Workers, logger)
	manifests := NewManifestService(repos.Snapshots, cfg.App, logger)
	conflicts := NewConflictService(cfg.App.SkewWindow)
	orchestrator := NewOrchestrator(sessions, manifests, conflicts, transport, repos.Devices, vault, applier, cfg.App, logger)
	queue := NewQueueService(repos.Queue, orchestrator, logger)

	return &Services{
		Sessions:     sessions,
		Manifests:    manifests,
		Conflicts:    conflicts,
		Orchestrator: orchestrator,
		Queue:        queue,
	}
}

// Stop tears the service layer down: every session is closed and its key
// material wiped.
func (s *Services) Stop() {
	s.Sessions.Stop()
}
