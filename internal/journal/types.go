package journal

import (
	"time"

	"github.com/roach88/workarounds/internal/definition"
)

// Outcome is the result of one execute request.
type Outcome string

const (
	OutcomeRan     Outcome = "ran"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Run is one journal row.
type Run struct {
	Seq        int64             `json:"seq"`
	RunID      string            `json:"run_id"`
	AppID      string            `json:"app_id"`
	Runner     definition.Runner `json:"runner"`
	Name       string            `json:"name"`
	Forced     bool              `json:"forced"`
	Outcome    Outcome           `json:"outcome"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Filter narrows ReadRuns. Empty fields match everything; Limit <= 0 means
// no limit.
type Filter struct {
	AppID  string
	Runner definition.Runner
	Limit  int
}
