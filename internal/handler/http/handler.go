package http

import (
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
)

type Handler struct {
	services *service.Services
	devices  store.DeviceRepository
	vault    service.VaultReader

	app config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, devices store.DeviceRepository, vault service.VaultReader, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		devices:  devices,
		vault:    vault,
		app:      app,
		logger:   logger,
	}
}
