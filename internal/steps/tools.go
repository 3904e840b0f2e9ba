package steps

import (
	"context"
	"fmt"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/symbolic"
)

// RunVerbs runs each verb in order, waiting for one to finish before the
// next starts. The first failure stops the sequence.
func RunVerbs(ctx context.Context, r VerbRunner, target symbolic.Target, verbs []string) error {
	for i, verb := range verbs {
		if err := r.RunVerb(ctx, target.LayerVersion, target.PrefixPath, verb); err != nil {
			return fmt.Errorf("verb[%d] %s: %w", i, verb, err)
		}
	}
	return nil
}

// EnableOverlay fetches the latest overlay version, installs it and enables
// it for (appID, runner), in that order.
func EnableOverlay(ctx context.Context, o OverlayInstaller, appID string, runner definition.Runner) error {
	if _, err := o.LatestVersion(ctx); err != nil {
		return fmt.Errorf("overlay version: %w", err)
	}
	if err := o.Install(ctx); err != nil {
		return fmt.Errorf("overlay install: %w", err)
	}
	if err := o.Enable(ctx, appID, runner); err != nil {
		return fmt.Errorf("overlay enable: %w", err)
	}
	return nil
}

// ShimChange is one shim operation derived from a definition.
type ShimChange struct {
	Shim Shim
	Mode ShimMode
}

// PlanShims returns the shim operations def requires on target, in the
// order they are applied. Shims are only managed for the wine layer kind;
// every other kind yields no operations. The three toggles are evaluated
// independently.
func PlanShims(def *definition.Definition, target symbolic.Target) []ShimChange {
	if target.LayerKind != symbolic.LayerWine {
		return nil
	}

	var plan []ShimChange
	if def.WineD3DRequired {
		plan = append(plan,
			ShimChange{Shim: ShimDXVK, Mode: ShimRestore},
			ShimChange{Shim: ShimVKD3D, Mode: ShimRestore},
		)
	}
	if def.DXVKRequired {
		plan = append(plan, ShimChange{Shim: ShimDXVK, Mode: ShimBackup})
	}
	if def.VKD3DProtonRequired {
		plan = append(plan, ShimChange{Shim: ShimVKD3D, Mode: ShimBackup})
	}
	return plan
}

// ApplyShims runs PlanShims(def, target) through s.
func ApplyShims(ctx context.Context, s ShimInstaller, def *definition.Definition, target symbolic.Target) error {
	for _, change := range PlanShims(def, target) {
		if err := s.SetShim(ctx, target.PrefixPath, target.LayerBin, change.Shim, change.Mode); err != nil {
			return fmt.Errorf("%s %s: %w", change.Mode, change.Shim, err)
		}
	}
	return nil
}
