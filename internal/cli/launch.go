package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/definition"
)

// NewLaunchCommand creates the launch command.
func NewLaunchCommand(rootOpts *RootOptions) *cobra.Command {
	var runner, name string

	cmd := &cobra.Command{
		Use:   "launch <app-id>",
		Short: "Print the launch overrides of a workaround",
		Long: `Print the launch overrides a workaround defines: the replacement
executable (resolved to a host path), start parameters, environment
variables and the fsync/esync toggles. Nothing is executed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(rootOpts, cmd, args[0], runner, name)
		},
	}
	addRunnerFlag(cmd, &runner)
	cmd.Flags().StringVarP(&name, "name", "n", definition.DefaultName, "workaround name")

	return cmd
}

func runLaunch(opts *RootOptions, cmd *cobra.Command, appID, runnerFlag, name string) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	runner, err := s.runner(runnerFlag)
	if err != nil {
		return err
	}
	eng, closeJournal, err := s.engine()
	if err != nil {
		return err
	}
	defer closeJournal()

	launch, err := eng.Launch(cmd.Context(), appID, runner, name)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to read launch overrides", err)
	}

	return s.out.Render(launch, func(w io.Writer) {
		t := newTable(w, "SETTING", "VALUE")
		t.AppendRow([]any{"exe", launch.Exe})
		t.AppendRow([]any{"start_params", launch.StartParams})
		t.AppendRow([]any{"fsync", launch.Fsync})
		t.AppendRow([]any{"esync", launch.Esync})
		for _, kv := range launch.Environ() {
			t.AppendRow([]any{"env", kv})
		}
		t.Render()
	})
}
