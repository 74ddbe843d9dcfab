package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	myHTTP "github.com/MKhiriev/go-vault-sync/internal/handler/http"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/server"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-vault-syncd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("device_id", cfg.App.DeviceID).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("database_dsn", cfg.Storage.DB.DSN).
		Dur("rotation_interval", cfg.Workers.RotationInterval).
		Msg("received configs")

	identity, err := crypto.LoadOrCreateIdentity(cfg.App.IdentityKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading device identity")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, db, err := store.NewRepositories(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}
	defer db.Close()

	transport := adapter.NewHTTPPeerAdapter(cfg.Adapter, cfg.App, log)
	vault := newFSVault(cfg.App.VaultPath)

	services := service.NewServices(repos, transport, vault, vault, identity, cfg, log)
	defer services.Stop()

	handlers := myHTTP.NewHandler(services, repos.Devices, vault, cfg.App, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, services.Queue, cfg.Workers, log).Run()

	// blocks until a stop signal, then shuts down gracefully
	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
