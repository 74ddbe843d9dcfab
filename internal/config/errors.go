package config

import "errors"

var (
	ErrInvalidAppConfigs     = errors.New("invalid app configs")
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")
	ErrInvalidServerConfigs  = errors.New("invalid server configs")
)
