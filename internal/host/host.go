package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/workarounds/internal/config"
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/steps"
	"github.com/roach88/workarounds/internal/symbolic"
)

var (
	// ErrUnknownApplication is returned for an application that is not
	// in the configuration.
	ErrUnknownApplication = errors.New("unknown application")

	// ErrToolNotConfigured is returned when a step needs a helper whose
	// command is not configured.
	ErrToolNotConfigured = errors.New("tool not configured")
)

// layerProton is the layer kind whose binary takes a "run" verb.
const layerProton = "proton"

// Host runs collaborators for the configured applications.
type Host struct {
	cfg    *config.Config
	runner CommandRunner
	logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithRunner sets the command runner. Default: ExecRunner.
func WithRunner(r CommandRunner) Option {
	return func(h *Host) {
		h.runner = r
	}
}

// WithLogger sets the logger used for command diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// New creates a Host for cfg.
func New(cfg *config.Config, opts ...Option) *Host {
	h := &Host{
		cfg:    cfg,
		runner: ExecRunner{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Steps returns h as the full collaborator set.
func (h *Host) Steps() steps.Host {
	return steps.Host{
		Targets:  h,
		Registry: h,
		Verbs:    h,
		Shims:    h,
		Overlay:  h,
		Runtimes: h,
	}
}

// ResolveTarget implements steps.TargetResolver.
func (h *Host) ResolveTarget(_ context.Context, appID string, runner definition.Runner) (symbolic.Target, error) {
	app, ok := h.cfg.Application(appID, runner)
	if !ok {
		return symbolic.Target{}, fmt.Errorf("%w: %s-%s", ErrUnknownApplication, runner, appID)
	}
	return app.Target(), nil
}

// RunRegistryCommand implements steps.RegistryRunner by running
// `<layer bin> reg add ...` against the application's prefix.
func (h *Host) RunRegistryCommand(ctx context.Context, appID string, runner definition.Runner, rc steps.RegistryCommand) error {
	target, err := h.ResolveTarget(ctx, appID, runner)
	if err != nil {
		return err
	}
	if target.LayerBin == "" {
		return fmt.Errorf("%s-%s: no compatibility layer binary configured", runner, appID)
	}

	cmd := Command{
		Name: target.LayerBin,
		Args: rc.Args(),
		Env:  []string{"WINEPREFIX=" + target.PrefixPath},
	}
	if target.LayerKind == layerProton {
		cmd.Args = append([]string{"run"}, cmd.Args...)
		cmd.Env = append(cmd.Env, "STEAM_COMPAT_DATA_PATH="+target.PrefixPath)
	}
	_, err = h.run(ctx, cmd)
	return err
}

// RunVerb implements steps.VerbRunner.
func (h *Host) RunVerb(ctx context.Context, layerVersion, prefixPath, verb string) error {
	cmd, err := tool("winetricks", h.cfg.Tools.Winetricks, verb)
	if err != nil {
		return err
	}
	cmd.Env = []string{"WINEPREFIX=" + prefixPath}
	h.logger.Debug("running winetricks", "verb", verb, "layer", layerVersion)
	_, err = h.run(ctx, cmd)
	return err
}

// SetShim implements steps.ShimInstaller.
func (h *Host) SetShim(ctx context.Context, prefixPath, layerBin string, shim steps.Shim, mode steps.ShimMode) error {
	cmd, err := tool("shim", h.cfg.Tools.Shim, string(shim), string(mode))
	if err != nil {
		return err
	}
	cmd.Env = []string{"WINEPREFIX=" + prefixPath, "WINE=" + layerBin}
	_, err = h.run(ctx, cmd)
	return err
}

// LatestVersion implements steps.OverlayInstaller. The version is the last
// non-empty line the overlay tool prints for "info".
func (h *Host) LatestVersion(ctx context.Context) (string, error) {
	cmd, err := tool("overlay", h.cfg.Tools.Overlay, "info")
	if err != nil {
		return "", err
	}
	out, err := h.run(ctx, cmd)
	if err != nil {
		return "", err
	}
	return lastLine(string(out)), nil
}

// Install implements steps.OverlayInstaller.
func (h *Host) Install(ctx context.Context) error {
	cmd, err := tool("overlay", h.cfg.Tools.Overlay, "install")
	if err != nil {
		return err
	}
	_, err = h.run(ctx, cmd)
	return err
}

// Enable implements steps.OverlayInstaller for the prefix of (appID, runner).
func (h *Host) Enable(ctx context.Context, appID string, runner definition.Runner) error {
	app, ok := h.cfg.Application(appID, runner)
	if !ok {
		return fmt.Errorf("%w: %s-%s", ErrUnknownApplication, runner, appID)
	}
	cmd, err := tool("overlay", h.cfg.Tools.Overlay, "enable", "--prefix", app.PrefixPath)
	if err != nil {
		return err
	}
	_, err = h.run(ctx, cmd)
	return err
}

// Download implements steps.RuntimeDownloader.
func (h *Host) Download(ctx context.Context, runtime string) error {
	cmd, err := tool("runtime", h.cfg.Tools.Runtime, runtime)
	if err != nil {
		return err
	}
	_, err = h.run(ctx, cmd)
	return err
}

func (h *Host) run(ctx context.Context, cmd Command) ([]byte, error) {
	h.logger.Debug("running command", "command", cmd.String())
	return h.runner.Run(ctx, cmd)
}

// tool builds a command from a configured base vector and extra args.
func tool(name string, base []string, args ...string) (Command, error) {
	if len(base) == 0 {
		return Command{}, fmt.Errorf("%w: %s", ErrToolNotConfigured, name)
	}
	return Command{
		Name: base[0],
		Args: append(append([]string{}, base[1:]...), args...),
	}, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
