package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/steps"
	"github.com/roach88/workarounds/internal/symbolic"
)

func TestRecordingHost_RecordsInOrder(t *testing.T) {
	h := NewRecordingHost()
	ctx := context.Background()

	require.NoError(t, h.RunVerb(ctx, "", "", "vcrun2019"))
	require.NoError(t, h.SetShim(ctx, "", "", steps.ShimDXVK, steps.ShimBackup))
	require.NoError(t, h.Enable(ctx, "Fortnite", definition.RunnerLegendary))

	assert.Equal(t, []string{
		"verb vcrun2019",
		"shim dxvk backup",
		"overlay enable Fortnite",
	}, h.Calls())
}

func TestRecordingHost_FailOn(t *testing.T) {
	h := NewRecordingHost()
	boom := errors.New("boom")
	h.FailOn("verb d3dx9", boom)

	require.NoError(t, h.RunVerb(context.Background(), "", "", "vcrun2019"))
	assert.ErrorIs(t, h.RunVerb(context.Background(), "", "", "d3dx9"), boom)
	assert.Equal(t, []string{"verb vcrun2019"}, h.Calls())
}

func TestRecordingHost_Targets(t *testing.T) {
	h := NewRecordingHost()
	want := symbolic.Target{InstallPath: "/games/a", PrefixPath: "/pfx"}
	h.SetTarget("a", definition.RunnerGOG, want)

	got, err := h.ResolveTarget(context.Background(), "a", definition.RunnerGOG)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = h.ResolveTarget(context.Background(), "a", definition.RunnerLegendary)
	assert.Error(t, err)
}

func TestRecordingHost_Reset(t *testing.T) {
	h := NewRecordingHost()
	require.NoError(t, h.Install(context.Background()))
	h.Reset()
	assert.Empty(t, h.Calls())
}
