package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/workarounds/internal/catalog"
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/journal"
	"github.com/roach88/workarounds/internal/steps"
	"github.com/roach88/workarounds/internal/symbolic"
)

// Recorder receives one journal row per Execute call.
// Implemented by *journal.Journal.
type Recorder interface {
	RecordRun(ctx context.Context, run journal.Run) error
}

// Engine runs workaround definitions against applications.
//
// The engine performs no locking: two Execute calls for the same
// (runner, application, name) may interleave. Callers serialize requests
// per application.
type Engine struct {
	catalog  *catalog.Catalog
	host     steps.Host
	logger   *slog.Logger
	runIDs   RunIDGenerator
	recorder Recorder
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRunIDs sets the run id generator. Default: UUIDv7Generator.
func WithRunIDs(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// WithJournal records every Execute call through r.
func WithJournal(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock sets the time source for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine reading definitions from cat and performing steps
// through host. Every collaborator in host must be set.
func New(cat *catalog.Catalog, host steps.Host, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		host:    host,
		logger:  slog.Default(),
		runIDs:  UUIDv7Generator{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies the definition name of (runner, appID). An empty name
// selects the default definition.
//
// Returns true when the steps ran and false when the definition had already
// been executed and force was not set; in that case nothing is touched.
// A step failure is returned as a *StepError.
func (e *Engine) Execute(ctx context.Context, appID string, runner definition.Runner, name string, force bool) (ran bool, err error) {
	if name == "" {
		name = definition.DefaultName
	}

	run := journal.Run{
		RunID:     e.runIDs.Generate(),
		AppID:     appID,
		Runner:    runner,
		Name:      name,
		Forced:    force,
		StartedAt: e.now(),
	}
	logger := e.logger.With("app_id", appID, "runner", runner, "name", name, "run_id", run.RunID)

	defer func() {
		run.FinishedAt = e.now()
		switch {
		case err != nil:
			run.Outcome = journal.OutcomeFailed
			run.Error = err.Error()
		case ran:
			run.Outcome = journal.OutcomeRan
		default:
			run.Outcome = journal.OutcomeSkipped
		}
		e.record(ctx, logger, run)
	}()

	loaded, err := e.catalog.Load(runner, appID, name)
	if err != nil {
		return false, fmt.Errorf("load workaround: %w", err)
	}
	def := loaded.Definition

	if def.Executed && !force {
		logger.Info("workaround already executed, skipping")
		return false, nil
	}

	target, err := e.host.Targets.ResolveTarget(ctx, appID, runner)
	if err != nil {
		return false, fmt.Errorf("resolve target: %w", err)
	}

	logger.Info("executing workaround", "path", loaded.Path, "forced", force)
	if err := e.apply(ctx, logger, appID, runner, def, target); err != nil {
		logger.Error("workaround failed", "error", err)
		return false, err
	}

	if !loaded.Persistable() {
		logger.Debug("template workaround is never marked executed", "path", loaded.Path)
		return true, nil
	}

	def.Executed = true
	if err := e.catalog.Save(runner, appID, name, def); err != nil {
		return false, stepError(ErrCodePersist, StepExecuted, -1, err)
	}
	logger.Info("workaround executed")
	return true, nil
}

// apply runs the step sequence of def. Each step completes before the next
// one starts.
func (e *Engine) apply(ctx context.Context, logger *slog.Logger, appID string, runner definition.Runner, def *definition.Definition, target symbolic.Target) error {
	for i, edit := range def.Regedit {
		if err := steps.RegistryAdd(ctx, e.host.Registry, appID, runner, edit, target); err != nil {
			return stepError(ErrCodeRegedit, StepRegedit, i, err)
		}
	}

	if len(def.Winetricks) > 0 {
		if err := steps.RunVerbs(ctx, e.host.Verbs, target, def.Winetricks); err != nil {
			return stepError(ErrCodeWinetricks, StepWinetricks, -1, err)
		}
	}

	for i, entry := range def.DeleteFile {
		warnUnresolved(logger, StepDeleteFile, i, target, entry.Src)
		if err := steps.DeleteFile(entry, target); err != nil {
			logger.Warn("delete_file failed, continuing", "index", i, "error", err)
		}
	}

	for i, entry := range def.CopyFile {
		warnUnresolved(logger, StepCopyFile, i, target, entry.Src, entry.Dst)
		if err := steps.CopyFile(entry, target); err != nil {
			return stepError(ErrCodeCopy, StepCopyFile, i, err)
		}
	}

	if def.EOSEnable {
		if err := steps.EnableOverlay(ctx, e.host.Overlay, appID, runner); err != nil {
			return stepError(ErrCodeOverlay, StepOverlay, -1, err)
		}
	}

	if def.EACEnable {
		if err := e.host.Runtimes.Download(ctx, steps.RuntimeEAC); err != nil {
			return stepError(ErrCodeRuntime, StepEAC, -1, err)
		}
	}

	if def.BattlEyeEnable {
		if err := e.host.Runtimes.Download(ctx, steps.RuntimeBattlEye); err != nil {
			return stepError(ErrCodeRuntime, StepBattlEye, -1, err)
		}
	}

	if err := steps.ApplyShims(ctx, e.host.Shims, def, target); err != nil {
		return stepError(ErrCodeShim, StepShims, -1, err)
	}
	return nil
}

// record writes run to the journal. A journal failure never changes the
// result of Execute.
func (e *Engine) record(ctx context.Context, logger *slog.Logger, run journal.Run) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

// warnUnresolved logs each path whose token Resolve does not know. Such paths
// still reach the filesystem unchanged.
func warnUnresolved(logger *slog.Logger, step string, index int, target symbolic.Target, paths ...string) {
	for _, p := range paths {
		if !symbolic.IsResolved(symbolic.Resolve(p, target, false)) {
			logger.Warn("unresolved path token", "step", step, "index", index, "path", p)
		}
	}
}
