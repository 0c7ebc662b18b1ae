package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarioOps(t *testing.T) {
	s := mustParse(t, `
name: ops
description: "every step kind"
options:
  fields: {name: asc}
steps:
  - set: [[name, desc]]
  - set: null
  - set_field: [name, asc]
  - reset: true
  - toggle: name
  - apply: [name, desc]
`)

	ops := make([]string, len(s.Steps))
	for i, step := range s.Steps {
		ops[i] = step.Op()
	}
	assert.Equal(t, []string{"set", "set", "set_field", "reset", "toggle", "apply"}, ops)
}

func TestParseScenarioInvalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "missing name",
			src:     "description: d\nsteps: [{reset: true}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			src:     "name: n\nsteps: [{reset: true}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			src:     "name: n\ndescription: d\n",
			wantErr: "at least one step",
		},
		{
			name:    "two ops in one step",
			src:     "name: n\ndescription: d\nsteps: [{reset: true, toggle: name}]\n",
			wantErr: "exactly one of set",
		},
		{
			name:    "empty step",
			src:     "name: n\ndescription: d\nsteps: [{}]\n",
			wantErr: "exactly one of set",
		},
		{
			name:    "short set_field",
			src:     "name: n\ndescription: d\nsteps: [{set_field: [name]}]\n",
			wantErr: "set_field must be",
		},
		{
			name:    "apply not a list",
			src:     "name: n\ndescription: d\nsteps: [{apply: name}]\n",
			wantErr: "apply must be a list",
		},
		{
			name:    "observer without kind",
			src:     "name: n\ndescription: d\nobservers: [{name: o}]\nsteps: [{reset: true}]\n",
			wantErr: "exactly one of get",
		},
		{
			name:    "duplicate observer",
			src:     "name: n\ndescription: d\nobservers: [{name: o, get: true}, {name: o, field: x}]\nsteps: [{reset: true}]\n",
			wantErr: `duplicate name "o"`,
		},
		{
			name:    "expect names unknown observer",
			src:     "name: n\ndescription: d\nsteps: [{reset: true, expect: {equals: {ghost: true}}}]\n",
			wantErr: `unknown observer "ghost"`,
		},
		{
			name:    "invalid assertion type",
			src:     "name: n\ndescription: d\nsteps: [{reset: true}]\nassertions: [{type: trace_count}]\n",
			wantErr: `invalid type "trace_count"`,
		},
		{
			name:    "rerun_count unknown observer",
			src:     "name: n\ndescription: d\nsteps: [{reset: true}]\nassertions: [{type: rerun_count, observer: ghost}]\n",
			wantErr: `unknown observer "ghost"`,
		},
		{
			name:    "unknown key",
			src:     "name: n\ndescription: d\nflow: []\nsteps: [{reset: true}]\n",
			wantErr: "parse scenario YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("b.yaml", "name: second\ndescription: d\noptions: {fields: {}}\nsteps: [{reset: true}]\n")
	write("a.yaml", "name: first\ndescription: d\noptions: {fields: {}}\nsteps: [{reset: true}]\n")
	write("notes.txt", "ignored")

	scenarios, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)

	write("c.yaml", "name: broken\n")
	_, err = LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.yaml")
}
