// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to peer devices.
//
// The primary abstraction is [PeerAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP implementation
// ([NewHTTPPeerAdapter]) that POSTs JSON to the peer's advertised address
// and port.
//
// Error values defined in errors.go are mapped from transport failures and
// HTTP status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrNetwork] for a refused
// connection, [ErrDeviceNotPaired] for 403).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/peer_adapter_mock.go -package=mock

// PeerAdapter defines transport-agnostic communication with a peer device's
// sync endpoint. Implementations are responsible for serialisation, pairing
// token management, and mapping transport-level errors to the sentinel values
// defined in this package.
type PeerAdapter interface {
	// Handshake opens a session with the peer: it sends this device's ID
	// and a fresh ephemeral public key, and returns the peer's
	// acknowledgement. A timeout or refused connection wraps [ErrNetwork].
	Handshake(ctx context.Context, device models.Device, req models.HandshakeRequest) (models.HandshakeResponse, error)

	// Sync sends an encrypted sync request packet to the peer and returns
	// the peer's encrypted response packet. The addressed device must hold
	// a valid address and port from the pairing store.
	Sync(ctx context.Context, device models.Device, packet models.EncryptedPacket) (models.EncryptedPacket, error)
}
