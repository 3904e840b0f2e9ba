package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/workarounds/internal/definition"
)

// ReadRuns returns runs matching f, newest first.
//
// Returns an empty slice (not nil) if nothing matches.
func (j *Journal) ReadRuns(ctx context.Context, f Filter) ([]Run, error) {
	var (
		where []string
		args  []any
	)
	if f.AppID != "" {
		where = append(where, "app_id = ?")
		args = append(args, f.AppID)
	}
	if f.Runner != "" {
		where = append(where, "runner = ?")
		args = append(args, string(f.Runner))
	}

	query := `
		SELECT seq, run_id, app_id, runner, name, forced, outcome, error, started_at, finished_at
		FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run               Run
		runner, outcome   string
		started, finished string
	)
	if err := rows.Scan(
		&run.Seq,
		&run.RunID,
		&run.AppID,
		&runner,
		&run.Name,
		&run.Forced,
		&outcome,
		&run.Error,
		&started,
		&finished,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Runner = definition.Runner(runner)
	run.Outcome = Outcome(outcome)

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return Run{}, fmt.Errorf("scan run %s: started_at: %w", run.RunID, err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return Run{}, fmt.Errorf("scan run %s: finished_at: %w", run.RunID, err)
	}
	return run, nil
}
