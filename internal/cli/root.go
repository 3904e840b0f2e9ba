package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/config"
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/engine"
	"github.com/roach88/workarounds/internal/steps"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // config file; empty means the default location

	// Host overrides the collaborators built from the config (for testing).
	// If nil, commands use host.New(cfg).Steps().
	Host func(cfg *config.Config) steps.Host

	// RunIDs overrides the run id generator (for testing).
	// If nil, defaults to engine.UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidRunners defines the runners accepted by --runner.
var ValidRunners = []definition.Runner{
	definition.RunnerLegendary,
	definition.RunnerGOG,
	definition.RunnerNile,
	definition.RunnerSideload,
}

// NewRootCommand creates the root command for the workarounds CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// newRootCommand builds the command tree around opts, so tests can preset
// the Host and RunIDs overrides.
func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workarounds",
		Short: "Apply per-application compatibility workarounds",
		Long: `Manage and apply compatibility workaround definitions.

Each application has named definitions (registry edits, file copies,
winetricks verbs, shim toggles, overlay and anti-cheat installs) stored in
the catalog. A definition runs once unless forced; sync refreshes the
catalog from the community archive.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .cue or .json)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExecuteCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewLaunchCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// parseRunner validates a --runner value.
func parseRunner(s string) (definition.Runner, error) {
	r := definition.Runner(s)
	if !slices.Contains(ValidRunners, r) {
		return "", fmt.Errorf("invalid runner %q: must be one of %v", s, ValidRunners)
	}
	return r, nil
}

// newLogger builds the text logger commands write diagnostics with.
// Debug output is enabled by --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// addRunnerFlag registers --runner on cmd.
func addRunnerFlag(cmd *cobra.Command, runner *string) {
	cmd.Flags().StringVarP(runner, "runner", "r", string(definition.RunnerLegendary), "application runner (legendary|gog|nile|sideload)")
}
