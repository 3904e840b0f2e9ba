package host

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerPassesEnv(t *testing.T) {
	requireShell(t)

	out, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf %s "$WORKAROUNDS_TEST_VALUE"`},
		Env:  []string{"WORKAROUNDS_TEST_VALUE=from-env"},
	})
	require.NoError(t, err)
	assert.Equal(t, "from-env", string(out))
}

func TestExecRunnerReportsOutputOnFailure(t *testing.T) {
	requireShell(t)

	_, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo broken prefix >&2; exit 3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken prefix")
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "winetricks", Args: []string{"-q", "vcrun2019"}}
	assert.Equal(t, "winetricks -q vcrun2019", c.String())
}
