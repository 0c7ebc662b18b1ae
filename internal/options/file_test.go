package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortspec/internal/order"
)

func TestParseFullDocument(t *testing.T) {
	src := `
fields:
  name: asc
  email: desconly
  createdAt:
    options:
      newest: {createdAt: -1}
      oldest: [[createdAt, asc]]
    order: [oldest, newest]
  updatedAt:
    recent: [[updatedAt, desc]]
defaultSort:
  createdAt: -1
  name: 1
toggleReset: false
append: default
`
	opts, err := Parse([]byte(src))
	require.NoError(t, err)

	r, err := opts.Resolve()
	require.NoError(t, err)

	assert.Equal(t, Field(ShorthandAsc), r.Fields["name"])
	assert.Equal(t, Field(ShorthandDescOnly), r.Fields["email"])

	created := r.Fields["createdAt"]
	require.Len(t, created.Options, 2)
	assert.Equal(t, "newest", created.Options[0].Label)
	assert.Equal(t, order.Order{order.P("createdAt", order.Desc)}, created.Options[0].Value)
	assert.Equal(t, []string{"oldest", "newest"}, created.Order)

	updated := r.Fields["updatedAt"]
	require.Len(t, updated.Options, 1)
	assert.Equal(t, "recent", updated.Options[0].Label)
	assert.Empty(t, updated.Order)

	assert.Equal(t, order.Order{order.P("createdAt", order.Desc), order.P("name", order.Asc)}, r.DefaultSort)
	assert.False(t, r.ToggleReset)
	assert.Equal(t, AppendDefault, r.Append)
}

func TestParseAppendFalse(t *testing.T) {
	opts, err := Parse([]byte("fields: {}\nappend: false\n"))
	require.NoError(t, err)
	assert.Equal(t, AppendNone, opts.Append)

	r, err := opts.Resolve()
	require.NoError(t, err)
	assert.Equal(t, AppendNone, r.Append)
}

func TestParseJSON(t *testing.T) {
	src := `{"fields": {"name": "asc"}, "defaultSort": [["name", "desc"]]}`
	opts, err := Parse([]byte(src))
	require.NoError(t, err)

	r, err := opts.Resolve()
	require.NoError(t, err)
	assert.Equal(t, order.Order{order.P("name", order.Desc)}, r.DefaultSort)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("fields: {}\ntoggle: true\n"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestParseInvalidOptionValue(t *testing.T) {
	src := `
fields:
  a:
    options:
      up: [[a, sideways]]
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
}

func TestParseUnknownExplicitKey(t *testing.T) {
	src := `
fields:
  a:
    options:
      up: [a]
    cycle: [up]
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestParseMissingDefaultSortStaysUnset(t *testing.T) {
	opts, err := Parse([]byte("fields: {name: asc}\n"))
	require.NoError(t, err)
	assert.Nil(t, opts.DefaultSort)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: {name: desc}\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Field(ShorthandDesc), opts.Fields["name"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}
