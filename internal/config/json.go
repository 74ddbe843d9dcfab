// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// Duration wraps time.Duration so that JSON config files can express
// durations in the human-readable "30s" / "5m" form.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts either a duration string ("30m") or a number of
// nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// MarshalJSON renders the duration back in string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// StructuredJSONConfig mirrors StructuredConfig for JSON config files.
// Durations use the string form.
type StructuredJSONConfig struct {
	App     JSONApp     `json:"app"`
	Storage JSONStorage `json:"storage"`
	Server  JSONServer  `json:"server"`
	Adapter JSONAdapter `json:"adapter"`
	Workers JSONWorkers `json:"workers"`
}

type JSONApp struct {
	DeviceID        string   `json:"device_id"`
	DeviceName      string   `json:"device_name"`
	PairingKey      string   `json:"pairing_key"`
	IdentityKeyPath string   `json:"identity_key_path"`
	SkewWindow      Duration `json:"skew_window"`
}

type JSONStorage struct {
	DatabaseDSN string `json:"database_dsn"`
}

type JSONServer struct {
	HTTPAddress    string   `json:"http_address"`
	RequestTimeout Duration `json:"request_timeout"`
}

type JSONAdapter struct {
	RequestTimeout Duration `json:"request_timeout"`
	TokenDuration  Duration `json:"token_duration"`
}

type JSONWorkers struct {
	QueueInterval    Duration `json:"queue_interval"`
	RotationInterval Duration `json:"rotation_interval"`
}

// parseJSON reads the JSON config file at path and converts it into a
// StructuredConfig for merging.
func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var jsonConfig StructuredJSONConfig
	if err = json.Unmarshal(data, &jsonConfig); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			DeviceID:        jsonConfig.App.DeviceID,
			DeviceName:      jsonConfig.App.DeviceName,
			PairingKey:      jsonConfig.App.PairingKey,
			IdentityKeyPath: jsonConfig.App.IdentityKeyPath,
			SkewWindow:      jsonConfig.App.SkewWindow.Duration,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonConfig.Storage.DatabaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonConfig.Server.HTTPAddress,
			RequestTimeout: jsonConfig.Server.RequestTimeout.Duration,
		},
		Adapter: Adapter{
			RequestTimeout: jsonConfig.Adapter.RequestTimeout.Duration,
			TokenDuration:  jsonConfig.Adapter.TokenDuration.Duration,
		},
		Workers: Workers{
			QueueInterval:    jsonConfig.Workers.QueueInterval.Duration,
			RotationInterval: jsonConfig.Workers.RotationInterval.Duration,
		},
	}, nil
}
