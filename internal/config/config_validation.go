package config

import (
	"fmt"
	"time"
)

const (
	defaultHTTPAddress      = "0.0.0.0:8484"
	defaultSkewWindow       = 5 * time.Minute
	defaultRequestTimeout   = 30 * time.Second
	defaultPeerTimeout      = 15 * time.Second
	defaultTokenDuration    = 2 * time.Minute
	defaultQueueInterval    = 60 * time.Second
	defaultRotationInterval = 30 * time.Minute
)

// applyDefaults fills zero-valued optional fields after all sources have
// been merged. Required fields (device id, pairing key, DSN) have no
// defaults and are checked by validate.
func (c *StructuredConfig) applyDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = defaultHTTPAddress
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.App.SkewWindow == 0 {
		c.App.SkewWindow = defaultSkewWindow
	}
	if c.App.IdentityKeyPath == "" {
		c.App.IdentityKeyPath = "identity.key"
	}
	if c.App.VaultPath == "" {
		c.App.VaultPath = "vault"
	}
	if c.Adapter.RequestTimeout == 0 {
		c.Adapter.RequestTimeout = defaultPeerTimeout
	}
	if c.Adapter.TokenDuration == 0 {
		c.Adapter.TokenDuration = defaultTokenDuration
	}
	if c.Workers.QueueInterval == 0 {
		c.Workers.QueueInterval = defaultQueueInterval
	}
	if c.Workers.RotationInterval == 0 {
		c.Workers.RotationInterval = defaultRotationInterval
	}
}

// validate checks that all required fields are present.
func (c *StructuredConfig) validate() error {
	if c.App.DeviceID == "" {
		return fmt.Errorf("%w: device id is required", ErrInvalidAppConfigs)
	}
	if c.App.PairingKey == "" {
		return fmt.Errorf("%w: pairing key is required", ErrInvalidAppConfigs)
	}
	if c.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if c.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	return nil
}
