// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-vault-sync service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds device identity and pairing settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local sqlite database backing
	// the retry queue, pairing store, and manifest snapshots.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeout of the inbound sync
	// endpoint.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings for outbound requests to peer devices.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds device identity and pairing settings.
type App struct {
	// DeviceID is this device's stable unique identifier, announced to
	// peers during discovery and used to key sessions and manifests.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// DeviceName is the human-readable name shown on peer devices.
	// Env: APP_DEVICE_NAME
	DeviceName string `env:"DEVICE_NAME"`

	// PairingKey is the secret shared between paired devices, used to
	// sign and verify the pairing bearer token on every sync request.
	// Must be kept confidential.
	// Env: APP_PAIRING_KEY
	PairingKey string `env:"PAIRING_KEY"`

	// IdentityKeyPath is the file that stores this device's long-term
	// P-256 private key (created on first run).
	// Env: APP_IDENTITY_KEY_PATH
	IdentityKeyPath string `env:"IDENTITY_KEY_PATH"`

	// VaultPath is the directory the external vault layer shares with the
	// sync engine: one subdirectory per vault, one file per entry. The
	// engine only ever hashes entry bytes, it never interprets them.
	// Env: APP_VAULT_PATH
	VaultPath string `env:"VAULT_PATH"`

	// SkewWindow is the timestamp tolerance within which two edits of the
	// same entry are treated as simultaneous for conflict detection
	// (e.g. "5m").
	// Env: APP_SKEW_WINDOW
	SkewWindow time.Duration `env:"SKEW_WINDOW"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the sqlite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// DSN is the sqlite database file path
	// (e.g. "/var/lib/vault-sync/sync.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound sync endpoint.
type Server struct {
	// HTTPAddress is the TCP address on which the sync endpoint listens,
	// in "host:port" format (e.g. "0.0.0.0:8484").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings for outbound requests to peer devices.
type Adapter struct {
	// RequestTimeout bounds every handshake and sync exchange with a
	// peer; a timeout is treated as a retryable network error.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenDuration is the validity window of the per-request pairing
	// bearer token (e.g. "2m").
	// Env: ADAPTER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Workers holds background worker intervals.
type Workers struct {
	// QueueInterval is how often the retry queue scans for ready
	// operations (e.g. "60s").
	// Env: WORKERS_QUEUE_INTERVAL
	QueueInterval time.Duration `env:"QUEUE_INTERVAL"`

	// RotationInterval is how often active session keys are rotated for
	// forward secrecy (e.g. "30m").
	// Env: WORKERS_ROTATION_INTERVAL
	RotationInterval time.Duration `env:"ROTATION_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the service
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
