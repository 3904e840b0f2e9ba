package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/definition"
)

// ShowResult is the show command's JSON result.
type ShowResult struct {
	Path         string                 `json:"path"`
	FromTemplate bool                   `json:"from_template"`
	Definition   *definition.Definition `json:"definition"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var runner, name string

	cmd := &cobra.Command{
		Use:   "show <app-id>",
		Short: "Print a workaround definition",
		Long: `Print a workaround definition as it will be executed, with defaults
filled in. When the application has no such definition, the runner
template is shown.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0], runner, name)
		},
	}
	addRunnerFlag(cmd, &runner)
	cmd.Flags().StringVarP(&name, "name", "n", definition.DefaultName, "workaround name")

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, appID, runnerFlag, name string) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	runner, err := s.runner(runnerFlag)
	if err != nil {
		return err
	}

	loaded, err := s.catalog.Load(runner, appID, name)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeCatalog, "failed to load workaround", err)
	}
	data, err := definition.Encode(loaded.Definition)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode workaround", err)
	}

	s.out.VerboseLog("Read %s", loaded.Path)
	result := ShowResult{Path: loaded.Path, FromTemplate: loaded.FromTemplate, Definition: loaded.Definition}
	return s.out.Render(result, func(w io.Writer) {
		fmt.Fprint(w, string(data))
	})
}
