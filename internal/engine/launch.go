package engine

import (
	"context"
	"fmt"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/symbolic"
)

// LaunchOptions are the launch overrides carried by a definition.
type LaunchOptions struct {
	// Exe is the resolved native path of override_exe, or empty when the
	// definition does not override the executable.
	Exe         string              `json:"exe"`
	StartParams string              `json:"start_params"`
	Env         []definition.EnvVar `json:"env"`
	Fsync       bool                `json:"fsync"`
	Esync       bool                `json:"esync"`
}

// Environ returns Env as KEY=VALUE pairs, in definition order.
func (o *LaunchOptions) Environ() []string {
	env := make([]string, 0, len(o.Env))
	for _, v := range o.Env {
		env = append(env, v.Key+"="+v.Value)
	}
	return env
}

// Launch returns the launch overrides of the definition name of
// (runner, appID). It never runs steps and never marks anything executed.
func (e *Engine) Launch(ctx context.Context, appID string, runner definition.Runner, name string) (*LaunchOptions, error) {
	loaded, err := e.catalog.Load(runner, appID, name)
	if err != nil {
		return nil, fmt.Errorf("load workaround: %w", err)
	}
	def := loaded.Definition

	opts := &LaunchOptions{
		StartParams: def.StartParams,
		Env:         append([]definition.EnvVar{}, def.EnvVar...),
		Fsync:       def.FsyncEnable,
		Esync:       def.EsyncEnable,
	}
	if def.OverrideExe != "" {
		target, err := e.host.Targets.ResolveTarget(ctx, appID, runner)
		if err != nil {
			return nil, fmt.Errorf("resolve target: %w", err)
		}
		opts.Exe = symbolic.Resolve(def.OverrideExe, target, false)
	}
	return opts, nil
}
