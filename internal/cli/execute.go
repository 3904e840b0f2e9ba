package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/engine"
)

// ExecuteOptions holds flags for the execute command.
type ExecuteOptions struct {
	*RootOptions
	Runner string
	Name   string
	Force  bool
}

// ExecuteResult is the execute command's result.
type ExecuteResult struct {
	AppID  string            `json:"app_id"`
	Runner definition.Runner `json:"runner"`
	Name   string            `json:"name"`
	Ran    bool              `json:"ran"`
}

// NewExecuteCommand creates the execute command.
func NewExecuteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecuteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "execute <app-id>",
		Short: "Apply a workaround to an application",
		Long: `Apply a workaround definition to an application.

A definition that has already been executed is skipped unless --force is
given. Without --name the default definition is used.

Example:
  workarounds execute Fortnite --runner legendary --name eac-fix
  workarounds execute 1207658924 --runner gog --force`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(opts, cmd, args[0])
		},
	}
	addRunnerFlag(cmd, &opts.Runner)
	cmd.Flags().StringVarP(&opts.Name, "name", "n", definition.DefaultName, "workaround name")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "run even if already executed")

	return cmd
}

func runExecute(opts *ExecuteOptions, cmd *cobra.Command, appID string) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	runner, err := s.runner(opts.Runner)
	if err != nil {
		return err
	}
	eng, closeJournal, err := s.engine()
	if err != nil {
		return err
	}
	defer closeJournal()

	ran, err := eng.Execute(cmd.Context(), appID, runner, opts.Name, opts.Force)
	if err != nil {
		if code, ok := engine.StepCode(err); ok {
			return s.out.Fail(ExitFailure, string(code), "workaround failed", err)
		}
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "workaround failed", err)
	}

	result := ExecuteResult{AppID: appID, Runner: runner, Name: opts.Name, Ran: ran}
	return s.out.Render(result, func(w io.Writer) {
		if ran {
			fmt.Fprintf(w, "Executed %s for %s-%s\n", opts.Name, runner, appID)
		} else {
			fmt.Fprintf(w, "Skipped %s for %s-%s: already executed (use --force to re-run)\n", opts.Name, runner, appID)
		}
	})
}
