// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PairingStatus describes where a discovered device sits in the pairing
// lifecycle. Only devices in status "paired" may participate in sync.
type PairingStatus string

const (
	// PairingDiscovered means the device was seen on the local network but
	// the user has not confirmed pairing yet.
	PairingDiscovered PairingStatus = "discovered"

	// PairingInProgress means a pairing attempt has been started by the
	// user but not yet confirmed by both sides.
	PairingInProgress PairingStatus = "pairing"

	// PairingPaired means both users confirmed the pairing; sync sessions
	// may be established with this device.
	PairingPaired PairingStatus = "paired"

	// PairingRevoked means the pairing was explicitly removed. Sync
	// attempts against a revoked device fail with a re-pair hint.
	PairingRevoked PairingStatus = "revoked"
)

// Device is a peer device known to the pairing store. Created on discovery
// and promoted to "paired" by explicit user action.
type Device struct {
	// ID is the stable unique identifier of the peer device.
	ID string `json:"id"`

	// DisplayName is the human-readable device name shown in the UI.
	DisplayName string `json:"display_name"`

	// Address is the last known network address of the device.
	Address string `json:"address"`

	// Port is the TCP port the device's sync endpoint listens on.
	Port int `json:"port"`

	// PairingStatus is the current pairing lifecycle state.
	PairingStatus PairingStatus `json:"pairing_status"`

	// PublicKey is the device's long-term P-256 public key in uncompressed
	// point form, exchanged once during pairing. Used as the static side of
	// the ephemeral-static key agreement on every handshake.
	PublicKey []byte `json:"public_key"`

	// CreatedAt is when the device was first discovered.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the device record was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPaired reports whether sync sessions may be established with the device.
func (d Device) IsPaired() bool {
	return d.PairingStatus == PairingPaired
}
