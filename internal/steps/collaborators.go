package steps

import (
	"context"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/symbolic"
)

// Shim names a graphics-API replacement managed in a prefix.
type Shim string

const (
	ShimDXVK  Shim = "dxvk"
	ShimVKD3D Shim = "vkd3d"
)

// ShimMode selects whether a shim is installed or its override removed.
type ShimMode string

const (
	// ShimBackup installs the shim, keeping the original DLLs aside.
	ShimBackup ShimMode = "backup"
	// ShimRestore removes the shim and restores the original DLLs.
	ShimRestore ShimMode = "restore"
)

// Runtime names for anti-cheat runtime downloads.
const (
	RuntimeEAC      = "eac_runtime"
	RuntimeBattlEye = "battleye_runtime"
)

// TargetResolver provides the per-application resolution context.
type TargetResolver interface {
	ResolveTarget(ctx context.Context, appID string, runner definition.Runner) (symbolic.Target, error)
}

// RegistryRunner runs a registry command inside the application's
// compatibility layer and waits for it to finish.
type RegistryRunner interface {
	RunRegistryCommand(ctx context.Context, appID string, runner definition.Runner, cmd RegistryCommand) error
}

// VerbRunner runs one helper-tool verb against a prefix.
type VerbRunner interface {
	RunVerb(ctx context.Context, layerVersion, prefixPath, verb string) error
}

// ShimInstaller installs or restores a graphics shim in a prefix.
type ShimInstaller interface {
	SetShim(ctx context.Context, prefixPath, layerBin string, shim Shim, mode ShimMode) error
}

// OverlayInstaller manages the store overlay.
type OverlayInstaller interface {
	LatestVersion(ctx context.Context) (string, error)
	Install(ctx context.Context) error
	Enable(ctx context.Context, appID string, runner definition.Runner) error
}

// RuntimeDownloader fetches a named runtime.
type RuntimeDownloader interface {
	Download(ctx context.Context, runtime string) error
}

// Host bundles every collaborator the engine needs.
type Host struct {
	Targets  TargetResolver
	Registry RegistryRunner
	Verbs    VerbRunner
	Shims    ShimInstaller
	Overlay  OverlayInstaller
	Runtimes RuntimeDownloader
}
