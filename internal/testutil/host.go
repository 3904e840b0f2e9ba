package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/steps"
	"github.com/roach88/workarounds/internal/symbolic"
)

// RecordingHost implements every steps collaborator and records each call,
// in order, as a short line such as "verb vcrun2019" or "shim dxvk backup".
//
// Failures are injected with FailOn: any call whose line starts with the
// given prefix returns the configured error instead of being recorded.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type RecordingHost struct {
	mu      sync.Mutex
	calls   []string
	failOn  map[string]error
	targets map[string]symbolic.Target

	// OnCall, when set, runs after a call is recorded. Tests use it to
	// observe filesystem state at the moment a collaborator runs.
	OnCall func(line string)
}

// NewRecordingHost creates a host with no registered targets.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{
		failOn:  make(map[string]error),
		targets: make(map[string]symbolic.Target),
	}
}

// Host returns a steps.Host with every collaborator backed by h.
func (h *RecordingHost) Host() steps.Host {
	return steps.Host{
		Targets:  h,
		Registry: h,
		Verbs:    h,
		Shims:    h,
		Overlay:  h,
		Runtimes: h,
	}
}

// SetTarget registers the target returned for (appID, runner).
func (h *RecordingHost) SetTarget(appID string, runner definition.Runner, t symbolic.Target) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.targets[targetKey(appID, runner)] = t
}

// FailOn makes calls whose line starts with prefix fail with err.
func (h *RecordingHost) FailOn(prefix string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failOn[prefix] = err
}

// Calls returns a copy of the recorded call lines.
func (h *RecordingHost) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.calls))
	copy(out, h.calls)
	return out
}

// Reset clears recorded calls. Targets and failures are kept.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = nil
}

func (h *RecordingHost) record(line string) error {
	h.mu.Lock()
	for prefix, err := range h.failOn {
		if strings.HasPrefix(line, prefix) {
			h.mu.Unlock()
			return err
		}
	}
	h.calls = append(h.calls, line)
	hook := h.OnCall
	h.mu.Unlock()

	if hook != nil {
		hook(line)
	}
	return nil
}

// ResolveTarget implements steps.TargetResolver.
func (h *RecordingHost) ResolveTarget(_ context.Context, appID string, runner definition.Runner) (symbolic.Target, error) {
	h.mu.Lock()
	t, ok := h.targets[targetKey(appID, runner)]
	h.mu.Unlock()
	if !ok {
		return symbolic.Target{}, fmt.Errorf("no target registered for %s", targetKey(appID, runner))
	}
	return t, nil
}

// RunRegistryCommand implements steps.RegistryRunner.
func (h *RecordingHost) RunRegistryCommand(_ context.Context, appID string, runner definition.Runner, cmd steps.RegistryCommand) error {
	return h.record("reg " + cmd.String())
}

// RunVerb implements steps.VerbRunner.
func (h *RecordingHost) RunVerb(_ context.Context, _, _ string, verb string) error {
	return h.record("verb " + verb)
}

// SetShim implements steps.ShimInstaller.
func (h *RecordingHost) SetShim(_ context.Context, _, _ string, shim steps.Shim, mode steps.ShimMode) error {
	return h.record(fmt.Sprintf("shim %s %s", shim, mode))
}

// LatestVersion implements steps.OverlayInstaller.
func (h *RecordingHost) LatestVersion(context.Context) (string, error) {
	if err := h.record("overlay latest"); err != nil {
		return "", err
	}
	return "1.0.0", nil
}

// Install implements steps.OverlayInstaller.
func (h *RecordingHost) Install(context.Context) error {
	return h.record("overlay install")
}

// Enable implements steps.OverlayInstaller.
func (h *RecordingHost) Enable(_ context.Context, appID string, _ definition.Runner) error {
	return h.record("overlay enable " + appID)
}

// Download implements steps.RuntimeDownloader.
func (h *RecordingHost) Download(_ context.Context, runtime string) error {
	return h.record("runtime " + runtime)
}

func targetKey(appID string, runner definition.Runner) string {
	return fmt.Sprintf("%s-%s", runner, appID)
}
