package journal

import (
	"context"
	"fmt"
	"time"
)

// timeLayout is the text form of timestamps stored in the journal.
const timeLayout = time.RFC3339Nano

// RecordRun inserts a run record.
// Uses ON CONFLICT(run_id) DO NOTHING for idempotency - a duplicate run id
// is silently ignored.
func (j *Journal) RecordRun(ctx context.Context, run Run) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, app_id, runner, name, forced, outcome, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO NOTHING
	`,
		run.RunID,
		run.AppID,
		string(run.Runner),
		run.Name,
		run.Forced,
		string(run.Outcome),
		run.Error,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
