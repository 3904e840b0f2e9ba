package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/config"
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Runner string
	Limit  int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [app-id]",
		Short: "Show recorded workaround executions",
		Long: `Show the execution journal, newest first. Requires journal_path to be
configured. With an app id only that application's runs are shown.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var appID string
			if len(args) == 1 {
				appID = args[0]
			}
			return runHistory(opts, cmd, appID)
		},
	}
	cmd.Flags().StringVarP(&opts.Runner, "runner", "r", "", "only runs of this runner")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command, appID string) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	filter := journal.Filter{AppID: appID, Limit: opts.Limit}
	if opts.Runner != "" {
		runner, err := s.runner(opts.Runner)
		if err != nil {
			return err
		}
		filter.Runner = runner
	}

	if s.cfg.JournalPath == "" {
		err := fmt.Errorf("set journal_path or %s", config.EnvJournal)
		return s.out.Fail(ExitCommandError, ErrCodeNoJournal, "journal not configured", err)
	}
	j, err := journal.Open(s.cfg.JournalPath)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to open journal", err)
	}
	defer j.Close()

	runs, err := j.ReadRuns(cmd.Context(), filter)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to read journal", err)
	}

	return s.out.Render(runs, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No recorded runs")
			return
		}
		t := newTable(w, "STARTED", "APPLICATION", "NAME", "OUTCOME", "FORCED", "ERROR")
		for _, r := range runs {
			t.AppendRow([]any{
				r.StartedAt.Local().Format(time.DateTime),
				appLabel(r.Runner, r.AppID),
				r.Name,
				r.Outcome,
				r.Forced,
				r.Error,
			})
		}
		t.Render()
	})
}

func appLabel(runner definition.Runner, appID string) string {
	return fmt.Sprintf("%s-%s", runner, appID)
}
