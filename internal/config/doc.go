// Package config provides configuration loading, merging, and validation
// facilities for the vault sync daemon.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. After merging, defaults are
// applied to optional fields and required fields (device id, pairing key,
// database DSN) are validated.
package config
