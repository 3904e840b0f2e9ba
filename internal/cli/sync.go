package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/syncer"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the catalog from the community archive",
		Long: `Download the community workaround archive and update the local catalog.

New definitions are added. A local definition is replaced when its content
differs from the remote one; a local executed flag is kept only when the
rest of the definition is unchanged.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(rootOpts, cmd)
		},
	}

	return cmd
}

func runSync(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	m := syncer.New(s.cfg.CatalogDir,
		syncer.WithStagingDir(s.cfg.StagingDir),
		syncer.WithURL(s.cfg.Sync.URL),
		syncer.WithRetryMax(s.cfg.Sync.RetryMax),
		syncer.WithLogger(s.logger),
	)
	report, err := m.UpdateAll(cmd.Context())
	if err != nil {
		var pe *syncer.PhaseError
		if errors.As(err, &pe) {
			_ = s.out.Error(ErrCodeSyncFailed, err.Error(), map[string]string{"phase": string(pe.Phase)})
			return WrapExitError(ExitFailure, "sync failed", err)
		}
		return s.out.Fail(ExitFailure, ErrCodeSyncFailed, "sync failed", err)
	}

	return s.out.Render(report, func(w io.Writer) {
		fmt.Fprintf(w, "Synced workarounds: %d added, %d replaced, %d unchanged\n",
			len(report.Added), len(report.Replaced), len(report.Unchanged))
		if !s.opts.Verbose {
			return
		}
		for _, name := range report.Added {
			fmt.Fprintf(w, "  + %s\n", name)
		}
		for _, name := range report.Replaced {
			fmt.Fprintf(w, "  ~ %s\n", name)
		}
	})
}
