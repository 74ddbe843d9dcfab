package adapter

import "errors"

var (
	// ErrNetwork marks transport-level failures (timeout, connection
	// refused, DNS). Retryable through the queue's backoff.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized means the peer rejected the pairing token. The user
	// has to re-pair; retrying will not help.
	ErrUnauthorized = errors.New("peer rejected pairing token")

	// ErrDeviceNotPaired means this device is not (or no longer) paired on
	// the remote side.
	ErrDeviceNotPaired = errors.New("device not paired on remote side")

	// ErrVaultNotFound means the peer does not know the requested vault.
	ErrVaultNotFound = errors.New("vault not found on remote side")

	// ErrProtocol marks a malformed or unexpected response shape.
	// Non-retryable; surfaced to the caller.
	ErrProtocol = errors.New("protocol error")
)
