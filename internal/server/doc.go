// Package server runs the inbound sync endpoint.
//
// It wraps the HTTP server lifecycle: startup, OS signal handling, and
// graceful shutdown so in-flight exchanges complete before the process
// exits.
package server
