package service

import "errors"

var (
	// ErrSessionNotFound means no active session exists for the peer;
	// the next attempt performs a fresh handshake.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionExpired means the session outlived its maximum lifetime or
	// idle timeout. The session is closed when this is returned.
	ErrSessionExpired = errors.New("session is expired")

	// ErrProtocol marks a malformed or unexpected message shape.
	// Non-retryable.
	ErrProtocol = errors.New("protocol error")

	// ErrNotPaired means the target device is unknown or not in paired
	// status; the user has to (re-)pair before syncing.
	ErrNotPaired = errors.New("device is not paired")

	// ErrVaultNotFound means the vault layer does not know the vault.
	ErrVaultNotFound = errors.New("vault was not found")

	// ErrSyncInProgress means another attempt for the same (device, vault)
	// pair is still running. Retryable.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrOperationNotCancellable means the operation already started
	// processing or reached a terminal state.
	ErrOperationNotCancellable = errors.New("operation cannot be cancelled")
)
