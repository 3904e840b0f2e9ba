package steps_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/steps"
	"github.com/roach88/workarounds/internal/symbolic"
	"github.com/roach88/workarounds/internal/testutil"
)

func TestRegistryCommandGolden(t *testing.T) {
	target := symbolic.Target{InstallPath: "/games/foo", PrefixPath: "/pfx"}
	edits := []definition.RegEdit{
		{Folder: `HKEY_CURRENT_USER\Software\Wine\DllOverrides`},
		{Folder: `HKEY_LOCAL_MACHINE\Software\Game`, Arch: true},
		{Folder: `HKEY_CURRENT_USER\Software\Wine\DllOverrides`, Name: "d3d11", Type: definition.RegSZ, Value: "native,builtin"},
		{Folder: `HKEY_LOCAL_MACHINE\Software\Game`, Name: "InstallDir", Type: definition.RegSZ, Value: "{GAMEDIR}/bin", Arch: true},
		{Folder: `HKEY_CURRENT_USER\Software\Game`, Name: "Saves", Type: definition.RegExpandSZ, Value: "{WINEDIR}/users/saves"},
		{Folder: `HKEY_CURRENT_USER\Software\Game`, Name: "Partial", Type: definition.RegDWORD},
	}

	var lines []string
	for _, e := range edits {
		lines = append(lines, steps.BuildRegistryCommand(e, target).String())
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "registry_commands", []byte(strings.Join(lines, "\n")+"\n"))
}

func TestRegistryCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		cmd  steps.RegistryCommand
		want []string
	}{
		{
			name: "key only",
			cmd:  steps.RegistryCommand{Key: `HKCU\A`},
			want: []string{"reg", "add", `HKCU\A`, "/f"},
		},
		{
			name: "key only 64-bit",
			cmd:  steps.RegistryCommand{Key: `HKCU\A`, Arch64: true},
			want: []string{"reg", "add", `HKCU\A`, "/f", "/reg:64"},
		},
		{
			name: "value",
			cmd:  steps.RegistryCommand{Key: `HKCU\A`, Name: "n", Type: definition.RegDWORD, Value: "1"},
			want: []string{"reg", "add", `HKCU\A`, "/f", "/v", "n", "/t", "REG_DWORD", "/d", "1"},
		},
		{
			name: "value 64-bit",
			cmd:  steps.RegistryCommand{Key: `HKCU\A`, Name: "n", Type: definition.RegDWORD, Value: "1", Arch64: true},
			want: []string{"reg", "add", `HKCU\A`, "/f", "/v", "n", "/t", "REG_DWORD", "/d", "1", "/reg:64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.Args())
		})
	}
}

func TestRegistryAddResolvesValue(t *testing.T) {
	h := testutil.NewRecordingHost()
	target := symbolic.Target{InstallPath: "/games/foo"}
	edit := definition.RegEdit{Folder: `HKCU\A`, Name: "p", Type: definition.RegSZ, Value: "{GAMEDIR}/x.exe"}

	err := steps.RegistryAdd(context.Background(), h, "foo", definition.RunnerLegendary, edit, target)
	require.NoError(t, err)

	assert.Equal(t, []string{`reg reg add 'HKCU\A' /f /v 'p' /t 'REG_SZ' /d 'z:\games\foo\x.exe'`}, h.Calls())
}

func TestRegistryAddPropagatesFailure(t *testing.T) {
	h := testutil.NewRecordingHost()
	boom := errors.New("wine exited 1")
	h.FailOn("reg", boom)

	err := steps.RegistryAdd(context.Background(), h, "foo", definition.RunnerLegendary, definition.RegEdit{Folder: `HKCU\A`}, symbolic.Target{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `HKCU\A`)
}
