package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/workarounds/internal/catalog"
	"github.com/roach88/workarounds/internal/config"
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/engine"
	"github.com/roach88/workarounds/internal/host"
	"github.com/roach88/workarounds/internal/journal"
)

// session is the state shared by one command invocation.
type session struct {
	opts    *RootOptions
	out     *OutputFormatter
	logger  *slog.Logger
	cfg     *config.Config
	catalog *catalog.Catalog
}

// newSession loads the config and builds the catalog. Failures are printed
// and returned as ExitErrors.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Diagnostics go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	logger.Debug("config loaded", "catalog_dir", cfg.CatalogDir, "applications", len(cfg.Applications))

	return &session{
		opts:    opts,
		out:     out,
		logger:  logger,
		cfg:     cfg,
		catalog: catalog.New(cfg.CatalogDir, catalog.WithLogger(logger)),
	}, nil
}

// runner validates a --runner value, printing the failure.
func (s *session) runner(value string) (definition.Runner, error) {
	r, err := parseRunner(value)
	if err != nil {
		return "", s.out.Fail(ExitCommandError, ErrCodeInvalidRunner, "invalid runner", err)
	}
	return r, nil
}

// engine builds an engine over the configured host and, when configured,
// the journal. The returned func releases the journal.
func (s *session) engine() (*engine.Engine, func(), error) {
	collaborators := host.New(s.cfg, host.WithLogger(s.logger)).Steps()
	if s.opts.Host != nil {
		collaborators = s.opts.Host(s.cfg)
	}

	engineOpts := []engine.Option{engine.WithLogger(s.logger)}
	if s.opts.RunIDs != nil {
		engineOpts = append(engineOpts, engine.WithRunIDs(s.opts.RunIDs))
	}

	closer := func() {}
	if s.cfg.JournalPath != "" {
		j, err := journal.Open(s.cfg.JournalPath)
		if err != nil {
			return nil, nil, s.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to open journal", err)
		}
		engineOpts = append(engineOpts, engine.WithJournal(j))
		closer = func() {
			if err := j.Close(); err != nil {
				s.logger.Error("error closing journal", "error", err)
			}
		}
	}

	return engine.New(s.catalog, collaborators, engineOpts...), closer, nil
}
