package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/catalog"
)

// Listing is the list command's result. Exists is false when the
// application has no workaround directory at all.
type Listing struct {
	Exists      bool            `json:"exists"`
	Workarounds []catalog.Entry `json:"workarounds"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var runner string

	cmd := &cobra.Command{
		Use:   "list <app-id>",
		Short: "List the workarounds of an application",
		Long: `List the stored workaround definitions of an application with their
executed state.

Example:
  workarounds list Fortnite --runner legendary`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd, args[0], runner)
		},
	}
	addRunnerFlag(cmd, &runner)

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command, appID, runnerFlag string) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	runner, err := s.runner(runnerFlag)
	if err != nil {
		return err
	}

	listing := Listing{Exists: true, Workarounds: []catalog.Entry{}}
	entries, err := s.catalog.List(runner, appID)
	switch {
	case errors.Is(err, catalog.ErrNoDirectory):
		listing.Exists = false
	case err != nil:
		return s.out.Fail(ExitCommandError, ErrCodeCatalog, "failed to list workarounds", err)
	default:
		listing.Workarounds = entries
	}

	return s.out.Render(listing, func(w io.Writer) {
		if !listing.Exists {
			fmt.Fprintf(w, "No workaround directory for %s-%s\n", runner, appID)
			return
		}
		if len(listing.Workarounds) == 0 {
			fmt.Fprintf(w, "No workarounds for %s-%s\n", runner, appID)
			return
		}
		t := newTable(w, "NAME", "EXECUTED")
		for _, e := range listing.Workarounds {
			t.AppendRow([]any{e.Name, e.Executed})
		}
		t.Render()
	})
}
