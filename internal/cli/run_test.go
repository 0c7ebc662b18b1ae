package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: passing
description: "toggle a field twice"
options:
  fields: {name: asc}
observers:
  - name: value
    get: true
steps:
  - toggle: name
    expect:
      get: "name:asc"
  - toggle: name
    expect:
      get: "name:desc"
assertions:
  - type: rerun_count
    observer: value
    count: 2
`

const failingScenario = `
name: failing
description: "expects the wrong value"
options:
  fields: {name: asc}
steps:
  - toggle: name
    expect:
      get: "name:desc"
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestRunPassing(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario, "README.md": "ignored"})

	out, _, err := execute(t, "run", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ passing")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestRunSingleFileWithTrace(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario})

	out, _, err := execute(t, "run", "--trace", filepath.Join(dir, "passing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `  [1] toggle name -> "name:asc"`)
	assert.Contains(t, out, `  [2] toggle name -> "name:desc"`)
}

func TestRunFailing(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario, "failing.yaml": failingScenario})

	out, _, err := execute(t, "run", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ failing")
	assert.Contains(t, out, `value: expected "name:desc", got "name:asc"`)
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestRunFilter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario, "failing.yaml": failingScenario})

	out, _, err := execute(t, "run", "--filter", "pass*", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "failing")
}

func TestRunJSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario})

	out, _, err := execute(t, "run", "--format", "json", dir)
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Len(t, resp.Data.Scenarios[0].Trace, 2)
	assert.Equal(t, "name:desc", resp.Data.Scenarios[0].Final)
}

func TestRunEmptyDir(t *testing.T) {
	out, _, err := execute(t, "run", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestRunMissingPath(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunInvalidScenario(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"broken.yaml": "name: broken\n"})

	out, _, err := execute(t, "run", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "description is required")
}

func TestRunGoldenUpdateAndCompare(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario})
	golden := filepath.Join(dir, "golden", "passing.golden")

	_, _, err := execute(t, "run", "--update", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario": "passing"`)

	_, _, err = execute(t, "run", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
	out, _, err := execute(t, "run", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestRunHarnessScenarios(t *testing.T) {
	base := filepath.Join("..", "harness", "testdata")

	out, _, err := execute(t, "run", "--golden", filepath.Join(base, "golden"), filepath.Join(base, "scenarios"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ toggle_cycle")
	assert.Contains(t, out, "✓ explicit_options")
}

func TestRunVerboseLogs(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"passing.yaml": passingScenario})

	_, errOut, err := execute(t, "run", "--verbose", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "sort order changed")
	assert.Contains(t, errOut, "scenario=passing")
}
