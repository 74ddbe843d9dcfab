package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDeviceNotFound is returned when a query targets a device that does
	// not exist in the pairing store.
	ErrDeviceNotFound = errors.New("device was not found")

	// ErrOperationNotFound is returned when a queue mutation targets an
	// operation ID that is not present in the queue table.
	ErrOperationNotFound = errors.New("queued operation was not found")

	// ErrSnapshotNotFound is returned when no manifest snapshot exists yet
	// for the requested (vault, device) pair. For a fresh pairing this is
	// the expected baseline: every entry classifies as a create.
	ErrSnapshotNotFound = errors.New("manifest snapshot was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
