package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workarounds/internal/definition"
)

func TestLaunchResolvesOverrides(t *testing.T) {
	f := newFixture(t)
	def := bare("Launcher bypass")
	def.OverrideExe = "{GAMEDIR}/Binaries/Game.exe"
	def.StartParams = "-skipintro"
	def.EsyncEnable = false
	def.EnvVar = []definition.EnvVar{
		{Key: "DXVK_ASYNC", Value: "1"},
		{Key: "PROTON_NO_ESYNC", Value: "1"},
	}
	f.save(t, "launch", def)

	opts, err := f.engine.Launch(context.Background(), testApp, testRunner, "launch")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(f.target.InstallPath, "Binaries", "Game.exe"), opts.Exe)
	assert.Equal(t, "-skipintro", opts.StartParams)
	assert.True(t, opts.Fsync)
	assert.False(t, opts.Esync)
	assert.Equal(t, []string{"DXVK_ASYNC=1", "PROTON_NO_ESYNC=1"}, opts.Environ())

	assert.Empty(t, f.host.Calls())
	assert.False(t, readExecuted(t, f.cat.Path(testRunner, testApp, "launch")))
}

func TestLaunchWithoutOverrideNeedsNoTarget(t *testing.T) {
	f := newFixture(t)

	opts, err := f.engine.Launch(context.Background(), "unregistered", testRunner, "")
	require.NoError(t, err)
	assert.Empty(t, opts.Exe)
	assert.True(t, opts.Fsync)
	assert.True(t, opts.Esync)
	assert.Empty(t, opts.Environ())
}

func TestLaunchOverrideUnknownTarget(t *testing.T) {
	f := newFixture(t)
	def := bare("Override")
	def.OverrideExe = "{GAMEDIR}/game.exe"
	require.NoError(t, f.cat.Save(testRunner, "unregistered", "fix", def))

	_, err := f.engine.Launch(context.Background(), "unregistered", testRunner, "fix")
	assert.Error(t, err)
}
