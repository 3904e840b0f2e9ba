package syncer

import (
	"errors"
	"fmt"
)

// Phase names a step of UpdateAll.
type Phase string

const (
	PhasePrepare Phase = "prepare"
	PhaseFetch   Phase = "fetch"
	PhaseExtract Phase = "extract"
	PhaseCompare Phase = "compare"
	PhaseCleanup Phase = "cleanup"
)

// PhaseError reports the phase that stopped a sync.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// IsPhaseError returns true if err is, or wraps, a PhaseError for phase.
// An empty phase matches any PhaseError.
func IsPhaseError(err error, phase Phase) bool {
	var pe *PhaseError
	if !errors.As(err, &pe) {
		return false
	}
	return phase == "" || pe.Phase == phase
}
