// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// sync endpoint handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSONProvided is returned when the request body cannot be
	// decoded as JSON.
	MsgInvalidJSONProvided = "invalid JSON was passed"

	// MsgDeviceNotPaired is returned when the requesting device is unknown
	// or its pairing has been revoked. Re-pairing is required before any
	// sync traffic is accepted.
	MsgDeviceNotPaired = "device is not paired"

	// MsgMalformedEphemeralKey is returned when the handshake carries an
	// ephemeral public key that is not valid base64 or not a valid point on
	// the curve.
	MsgMalformedEphemeralKey = "malformed ephemeral public key"

	// MsgKeyExchangeRejected is returned when the key agreement over the
	// supplied ephemeral key fails.
	MsgKeyExchangeRejected = "key exchange rejected"

	// MsgHandshakeRequired is returned when an encrypted packet references a
	// session that does not exist or has expired. The initiator must perform
	// a fresh handshake and retry.
	MsgHandshakeRequired = "handshake required"

	// MsgPacketAuthenticationFailed is returned when a packet decrypts
	// against a live session but its authentication tag does not verify.
	MsgPacketAuthenticationFailed = "packet authentication failed"

	// MsgMalformedPacket is returned when an encrypted packet is
	// structurally invalid for reasons other than failed authentication.
	MsgMalformedPacket = "malformed packet"

	// MsgErrorBuildingManifest is placed into the sync response error field
	// when the responder cannot summarize its own vault state.
	MsgErrorBuildingManifest = "error building manifest"
)
