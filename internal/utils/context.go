// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, HTTP response writing,
// UUID generation, and pairing-token handling.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PeerDeviceIDCtxKey is the key under which the authenticated peer device's
// identifier is stored in the request context by the pairing-token
// middleware.
var PeerDeviceIDCtxKey = contextKey("peerDeviceID")

// GetPeerDeviceIDFromContext retrieves the authenticated peer device ID
// from the context.
//
// Returns the device ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetPeerDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(PeerDeviceIDCtxKey).(string)
	return deviceID, ok
}
