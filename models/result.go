package models

// SyncPhase is the orchestrator's externally visible state. Progress is
// emitted at fixed checkpoints so observers can render determinate progress.
type SyncPhase string

const (
	PhaseIdle       SyncPhase = "idle"
	PhasePreparing  SyncPhase = "preparing"
	PhaseConnecting SyncPhase = "connecting"
	PhaseExchanging SyncPhase = "exchanging"
	PhaseResolving  SyncPhase = "resolving"
	PhaseCompleting SyncPhase = "completing"
	PhaseCompleted  SyncPhase = "completed"
	PhaseError      SyncPhase = "error"
)

// Progress returns the fixed progress fraction for the phase.
func (p SyncPhase) Progress() float64 {
	switch p {
	case PhaseConnecting:
		return 0.2
	case PhaseExchanging, PhaseResolving:
		return 0.5
	case PhaseCompleting:
		return 0.9
	case PhaseCompleted:
		return 1.0
	default:
		return 0.0
	}
}

// ResultStatus is the terminal classification of one sync attempt.
type ResultStatus string

const (
	ResultSuccess  ResultStatus = "success"
	ResultConflict ResultStatus = "conflict"
	ResultFailure  ResultStatus = "failure"
)

// SyncResult is the closed result union of one sync attempt. Exactly one of
// the optional fields is meaningful for each status: Conflicts for
// ResultConflict, Message for ResultFailure.
type SyncResult struct {
	Status    ResultStatus   `json:"status"`
	Conflicts []SyncConflict `json:"conflicts,omitempty"`
	Message   string         `json:"message,omitempty"`

	// Applied is the number of remote entries applied to the local vault.
	Applied int `json:"applied"`
}

// SuccessResult builds a success result with the given applied-entry count.
func SuccessResult(applied int) SyncResult {
	return SyncResult{Status: ResultSuccess, Applied: applied}
}

// ConflictResult builds a conflict result. A conflict is a normal outcome,
// not a failure: the caller must supply a resolution and re-sync.
func ConflictResult(conflicts []SyncConflict) SyncResult {
	return SyncResult{Status: ResultConflict, Conflicts: conflicts}
}

// FailureResult builds a failure result from err's message.
func FailureResult(err error) SyncResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return SyncResult{Status: ResultFailure, Message: msg}
}
