package engine

import (
	"errors"
	"fmt"
)

// StepErrorCode categorizes a failed pipeline step.
type StepErrorCode string

const (
	// ErrCodeRegedit indicates a registry command failed.
	ErrCodeRegedit StepErrorCode = "REGEDIT_FAILED"

	// ErrCodeWinetricks indicates a winetricks verb failed.
	ErrCodeWinetricks StepErrorCode = "WINETRICKS_FAILED"

	// ErrCodeCopy indicates a copy_file entry failed.
	ErrCodeCopy StepErrorCode = "COPY_FAILED"

	// ErrCodeOverlay indicates the overlay could not be installed or enabled.
	ErrCodeOverlay StepErrorCode = "OVERLAY_FAILED"

	// ErrCodeRuntime indicates an anti-cheat runtime download failed.
	ErrCodeRuntime StepErrorCode = "RUNTIME_FAILED"

	// ErrCodeShim indicates a graphics shim toggle failed.
	ErrCodeShim StepErrorCode = "SHIM_FAILED"

	// ErrCodePersist indicates the executed flag could not be written.
	ErrCodePersist StepErrorCode = "PERSIST_FAILED"
)

// Step names used in StepError.
const (
	StepRegedit    = "regedit"
	StepWinetricks = "winetricks"
	StepDeleteFile = "delete_file"
	StepCopyFile   = "copy_file"
	StepOverlay    = "eos"
	StepEAC        = "eac"
	StepBattlEye   = "battleye"
	StepShims      = "shims"
	StepExecuted   = "executed"
)

// StepError reports the pipeline step that stopped an execution.
//
// Steps already performed are not rolled back, and the executed flag is
// left untouched.
type StepError struct {
	// Code identifies the error category.
	Code StepErrorCode

	// Step names the pipeline step.
	Step string

	// Index is the position of the failing entry within a list step,
	// or -1 for steps that are not lists.
	Index int

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s[%d]: %v", e.Code, e.Step, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Step, e.Err)
}

// Unwrap returns the underlying failure.
func (e *StepError) Unwrap() error {
	return e.Err
}

// IsStepError returns true if err is, or wraps, a StepError.
func IsStepError(err error) bool {
	var se *StepError
	return errors.As(err, &se)
}

// StepCode returns the code of the StepError in err's chain, if any.
func StepCode(err error) (StepErrorCode, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

func stepError(code StepErrorCode, step string, index int, err error) *StepError {
	return &StepError{Code: code, Step: step, Index: index, Err: err}
}
