package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNative(t *testing.T) {
	target := Target{InstallPath: "/games/foo", PrefixPath: "/pfx"}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"gamedir", "{GAMEDIR}/save.dat", "/games/foo/save.dat"},
		{"winedir", "{WINEDIR}/drive_c/x", "/pfx/drive_c/x"},
		{"token only", "{GAMEDIR}", "/games/foo"},
		{"unknown token", "{HOME}/x", "{HOME}/x"},
		{"no braces", "/abs/path", "/abs/path"},
		{"empty", "", ""},
		{"unclosed", "{GAMEDIR/x", "{GAMEDIR/x"},
		{"second brace pair kept", "{GAMEDIR}/a/{b}", "/games/foo/a/{b}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path, target, false))
		})
	}
}

func TestResolveRegistry(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		target Target
		want   string
	}{
		{
			name:   "gamedir windows install path",
			path:   "{GAMEDIR}/x",
			target: Target{InstallPath: `C:\games\foo`},
			want:   `z:C:\games\foo\x`,
		},
		{
			name:   "gamedir unix install path",
			path:   "{GAMEDIR}/bin/game.exe",
			target: Target{InstallPath: "/games/foo"},
			want:   `z:\games\foo\bin\game.exe`,
		},
		{
			name:   "winedir",
			path:   "{WINEDIR}/windows/system32",
			target: Target{PrefixPath: "/pfx"},
			want:   "c:/windows/system32",
		},
		{
			name:   "plain value untouched",
			path:   "1",
			target: Target{InstallPath: "/games/foo"},
			want:   "1",
		},
		{
			name:   "unknown token untouched",
			path:   "{STEAM}/x",
			target: Target{InstallPath: "/games/foo"},
			want:   "{STEAM}/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path, tt.target, true))
		})
	}
}

func TestIsResolved(t *testing.T) {
	assert.True(t, IsResolved("/games/foo/x"))
	assert.False(t, IsResolved("{HOME}/x"))
	assert.True(t, IsResolved("{unclosed"))
}
