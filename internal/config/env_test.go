// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_DEVICE_ID":         "laptop-1",
		"APP_DEVICE_NAME":       "Work Laptop",
		"APP_PAIRING_KEY":       "pairing_secret",
		"APP_IDENTITY_KEY_PATH": "/var/lib/vault-sync/identity.key",
		"APP_SKEW_WINDOW":       "5m",

		"SERVER_ADDRESS":         "localhost:8484",
		"SERVER_REQUEST_TIMEOUT": "30s",

		"ADAPTER_REQUEST_TIMEOUT": "15s",
		"ADAPTER_TOKEN_DURATION":  "2m",

		"WORKERS_QUEUE_INTERVAL":    "60s",
		"WORKERS_ROTATION_INTERVAL": "30m",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "/var/lib/vault-sync/sync.db",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "laptop-1", cfg.App.DeviceID)
	assert.Equal(t, "Work Laptop", cfg.App.DeviceName)
	assert.Equal(t, "pairing_secret", cfg.App.PairingKey)
	assert.Equal(t, "/var/lib/vault-sync/identity.key", cfg.App.IdentityKeyPath)
	assert.Equal(t, 5*time.Minute, cfg.App.SkewWindow)

	assert.Equal(t, "localhost:8484", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Adapter.TokenDuration)

	assert.Equal(t, 60*time.Second, cfg.Workers.QueueInterval)
	assert.Equal(t, 30*time.Minute, cfg.Workers.RotationInterval)

	assert.Equal(t, "/var/lib/vault-sync/sync.db", cfg.Storage.DB.DSN)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APP_PAIRING_KEY": "pairing_secret",
		"SERVER_ADDRESS":  "localhost:8484",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// App partially filled
	assert.Empty(t, cfg.App.DeviceID)
	assert.Equal(t, "pairing_secret", cfg.App.PairingKey)
	assert.Zero(t, cfg.App.SkewWindow)

	// Server partially filled
	assert.Equal(t, "localhost:8484", cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Server.RequestTimeout)

	// Others untouched
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Equal(t, Adapter{}, cfg.Adapter)
	assert.Equal(t, Workers{}, cfg.Workers)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// All nested fields are non-pointer values, so "empty" state is
	// represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Server{}, cfg.Server)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Adapter{}, cfg.Adapter)
	assert.Equal(t, Workers{}, cfg.Workers)
}

func TestParseEnv_OnlyStorageDB(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"STORAGE_DB_DATABASE_URI": "/tmp/testdb.sqlite",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/tmp/testdb.sqlite", cfg.Storage.DB.DSN)
	assert.Equal(t, App{}, cfg.App)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APP_SKEW_WINDOW": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"SERVER_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Server.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_DEVICE_ID",
		"APP_DEVICE_NAME",
		"APP_PAIRING_KEY",
		"APP_IDENTITY_KEY_PATH",
		"APP_SKEW_WINDOW",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",

		"ADAPTER_REQUEST_TIMEOUT",
		"ADAPTER_TOKEN_DURATION",

		"WORKERS_QUEUE_INTERVAL",
		"WORKERS_ROTATION_INTERVAL",

		"STORAGE_DB_DATABASE_URI",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
