package host

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workarounds/internal/config"
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/steps"
	"github.com/roach88/workarounds/internal/symbolic"
)

// fakeRunner records commands and returns canned output.
type fakeRunner struct {
	mu       sync.Mutex
	commands []Command
	output   string
	err      error
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	return []byte(f.output), f.err
}

func (f *fakeRunner) last(t *testing.T) Command {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.commands)
	return f.commands[len(f.commands)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		Tools: config.Tools{
			Winetricks: []string{"winetricks", "-q"},
			Shim:       []string{"shimctl"},
			Overlay:    []string{"legendary", "eos-overlay"},
			Runtime:    []string{"runtimectl", "download"},
		},
		Applications: []config.Application{
			{
				ID:          "Fortnite",
				Runner:      definition.RunnerLegendary,
				InstallPath: "/games/Fortnite",
				PrefixPath:  "/prefixes/Fortnite",
				Layer:       config.Layer{Kind: symbolic.LayerWine, Bin: "/opt/wine/bin/wine", Version: "wine-ge"},
			},
			{
				ID:          "Witcher",
				Runner:      definition.RunnerGOG,
				InstallPath: "/games/Witcher",
				PrefixPath:  "/compat/Witcher",
				Layer:       config.Layer{Kind: "proton", Bin: "/opt/proton/proton"},
			},
		},
	}
}

func newTestHost(cfg *config.Config) (*Host, *fakeRunner) {
	r := &fakeRunner{}
	return New(cfg, WithRunner(r), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))), r
}

func TestResolveTarget(t *testing.T) {
	h, _ := newTestHost(testConfig())

	target, err := h.ResolveTarget(context.Background(), "Fortnite", definition.RunnerLegendary)
	require.NoError(t, err)
	assert.Equal(t, "/games/Fortnite", target.InstallPath)
	assert.Equal(t, "wine-ge", target.LayerVersion)

	_, err = h.ResolveTarget(context.Background(), "Fortnite", definition.RunnerNile)
	assert.ErrorIs(t, err, ErrUnknownApplication)
}

func TestRunRegistryCommand(t *testing.T) {
	h, r := newTestHost(testConfig())
	rc := steps.RegistryCommand{Key: `HKCU\Software\Wine`, Name: "Version", Type: definition.RegSZ, Value: "win10"}

	require.NoError(t, h.RunRegistryCommand(context.Background(), "Fortnite", definition.RunnerLegendary, rc))
	assert.Equal(t, Command{
		Name: "/opt/wine/bin/wine",
		Args: []string{"reg", "add", `HKCU\Software\Wine`, "/f", "/v", "Version", "/t", "REG_SZ", "/d", "win10"},
		Env:  []string{"WINEPREFIX=/prefixes/Fortnite"},
	}, r.last(t))
}

func TestRunRegistryCommandProton(t *testing.T) {
	h, r := newTestHost(testConfig())
	rc := steps.RegistryCommand{Key: `HKLM\Software\X`, Arch64: true}

	require.NoError(t, h.RunRegistryCommand(context.Background(), "Witcher", definition.RunnerGOG, rc))
	cmd := r.last(t)
	assert.Equal(t, "/opt/proton/proton", cmd.Name)
	assert.Equal(t, []string{"run", "reg", "add", `HKLM\Software\X`, "/f", "/reg:64"}, cmd.Args)
	assert.Contains(t, cmd.Env, "STEAM_COMPAT_DATA_PATH=/compat/Witcher")
}

func TestRunRegistryCommandErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Applications[0].Layer.Bin = ""
	h, r := newTestHost(cfg)
	ctx := context.Background()

	err := h.RunRegistryCommand(ctx, "Fortnite", definition.RunnerLegendary, steps.RegistryCommand{Key: "k"})
	assert.ErrorContains(t, err, "no compatibility layer binary")

	err = h.RunRegistryCommand(ctx, "Nope", definition.RunnerLegendary, steps.RegistryCommand{Key: "k"})
	assert.ErrorIs(t, err, ErrUnknownApplication)
	assert.Empty(t, r.commands)
}

func TestToolCommands(t *testing.T) {
	tests := []struct {
		name string
		call func(context.Context, *Host) error
		want Command
	}{
		{
			name: "winetricks",
			call: func(ctx context.Context, h *Host) error {
				return h.RunVerb(ctx, "wine-ge", "/prefixes/Fortnite", "vcrun2019")
			},
			want: Command{Name: "winetricks", Args: []string{"-q", "vcrun2019"}, Env: []string{"WINEPREFIX=/prefixes/Fortnite"}},
		},
		{
			name: "shim",
			call: func(ctx context.Context, h *Host) error {
				return h.SetShim(ctx, "/prefixes/Fortnite", "/opt/wine/bin/wine", steps.ShimDXVK, steps.ShimBackup)
			},
			want: Command{
				Name: "shimctl",
				Args: []string{"dxvk", "backup"},
				Env:  []string{"WINEPREFIX=/prefixes/Fortnite", "WINE=/opt/wine/bin/wine"},
			},
		},
		{
			name: "overlay install",
			call: func(ctx context.Context, h *Host) error { return h.Install(ctx) },
			want: Command{Name: "legendary", Args: []string{"eos-overlay", "install"}},
		},
		{
			name: "overlay enable",
			call: func(ctx context.Context, h *Host) error { return h.Enable(ctx, "Fortnite", definition.RunnerLegendary) },
			want: Command{Name: "legendary", Args: []string{"eos-overlay", "enable", "--prefix", "/prefixes/Fortnite"}},
		},
		{
			name: "runtime",
			call: func(ctx context.Context, h *Host) error { return h.Download(ctx, steps.RuntimeEAC) },
			want: Command{Name: "runtimectl", Args: []string{"download", "eac_runtime"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, r := newTestHost(testConfig())
			require.NoError(t, tt.call(context.Background(), h))
			assert.Equal(t, tt.want, r.last(t))
		})
	}
}

func TestToolNotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Tools.Shim = nil
	cfg.Tools.Runtime = nil
	h, r := newTestHost(cfg)
	ctx := context.Background()

	assert.ErrorIs(t, h.SetShim(ctx, "/p", "/w", steps.ShimVKD3D, steps.ShimRestore), ErrToolNotConfigured)
	assert.ErrorIs(t, h.Download(ctx, steps.RuntimeBattlEye), ErrToolNotConfigured)
	assert.Empty(t, r.commands)
}

func TestLatestVersion(t *testing.T) {
	h, r := newTestHost(testConfig())
	r.output = "Fetching overlay info...\nVersion: 1.3.4\n\n"

	v, err := h.LatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Version: 1.3.4", v)
	assert.Equal(t, []string{"eos-overlay", "info"}, r.last(t).Args)
}

func TestEnableUnknownApplication(t *testing.T) {
	h, _ := newTestHost(testConfig())
	assert.ErrorIs(t, h.Enable(context.Background(), "Nope", definition.RunnerLegendary), ErrUnknownApplication)
	assert.ErrorIs(t, h.Enable(context.Background(), "Fortnite", definition.RunnerGOG), ErrUnknownApplication)
}

func TestEnableUsesRunnerPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.Applications = append([]config.Application{{
		ID:         "Fortnite",
		Runner:     definition.RunnerSideload,
		PrefixPath: "/prefixes/sideload-Fortnite",
	}}, cfg.Applications...)
	h, r := newTestHost(cfg)

	require.NoError(t, h.Enable(context.Background(), "Fortnite", definition.RunnerLegendary))
	assert.Equal(t, []string{"eos-overlay", "enable", "--prefix", "/prefixes/Fortnite"}, r.last(t).Args)

	require.NoError(t, h.Enable(context.Background(), "Fortnite", definition.RunnerSideload))
	assert.Equal(t, []string{"eos-overlay", "enable", "--prefix", "/prefixes/sideload-Fortnite"}, r.last(t).Args)
}

func TestCommandFailurePropagates(t *testing.T) {
	h, r := newTestHost(testConfig())
	r.err = errors.New("exit status 1")

	err := h.RunVerb(context.Background(), "", "/p", "d3dx9")
	assert.EqualError(t, err, "exit status 1")
}

func TestStepsHostIsComplete(t *testing.T) {
	h, _ := newTestHost(testConfig())
	s := h.Steps()
	assert.NotNil(t, s.Targets)
	assert.NotNil(t, s.Registry)
	assert.NotNil(t, s.Verbs)
	assert.NotNil(t, s.Shims)
	assert.NotNil(t, s.Overlay)
	assert.NotNil(t, s.Runtimes)
}
