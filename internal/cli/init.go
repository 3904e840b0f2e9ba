package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	var runner string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default workaround template",
		Long: `Create the catalog's default workaround template with factory values.
An existing template is left untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd, runner)
		},
	}
	addRunnerFlag(cmd, &runner)

	return cmd
}

func runInit(opts *RootOptions, cmd *cobra.Command, runnerFlag string) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	runner, err := s.runner(runnerFlag)
	if err != nil {
		return err
	}

	if err := s.catalog.EnsureDefault(runner); err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeCatalog, "failed to write template", err)
	}

	path := s.catalog.DefaultPath()
	return s.out.Render(map[string]string{"path": path}, func(w io.Writer) {
		fmt.Fprintf(w, "Default workaround at %s\n", path)
	})
}
