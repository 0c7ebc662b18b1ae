package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "sortspec", cmd.Use)
	assert.Contains(t, cmd.Long, "SORTSPEC_FORMAT")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"validate", "normalize", "run"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "normalize", "--format", "xml", `["a"]`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestFormatFromEnvironment(t *testing.T) {
	t.Setenv("SORTSPEC_FORMAT", "json")

	out, _, err := execute(t, "normalize", `["a"]`)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
}

func TestFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("SORTSPEC_FORMAT", "json")

	out, _, err := execute(t, "normalize", "--format", "text", `["a"]`)
	require.NoError(t, err)
	assert.Equal(t, "a:asc\n", out)
}

func TestLoggerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	quiet := &RootOptions{logWriter: buf}
	quiet.Logger().Debug("hidden")
	assert.Empty(t, buf.String())

	loud := &RootOptions{Verbose: true, logWriter: buf}
	loud.Logger().Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
