package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortspec/internal/options"
	"github.com/roach88/sortspec/internal/order"
)

func TestBuildShorthands(t *testing.T) {
	r, err := Build(map[string]options.FieldConfig{
		"name":      options.Field(options.ShorthandAsc),
		"createdAt": options.Field(options.ShorthandDesc),
		"email":     options.Field(options.ShorthandAscOnly),
		"updatedAt": options.Field(options.ShorthandDescOnly),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"createdAt", "email", "name", "updatedAt"}, r.Names())

	tests := []struct {
		field  string
		cycle  []string
		values map[string]order.Order
	}{
		{"name", []string{"asc", "desc"}, map[string]order.Order{
			"asc":  {order.P("name", order.Asc)},
			"desc": {order.P("name", order.Desc)},
		}},
		{"createdAt", []string{"desc", "asc"}, map[string]order.Order{
			"asc":  {order.P("createdAt", order.Asc)},
			"desc": {order.P("createdAt", order.Desc)},
		}},
		{"email", []string{"asc"}, map[string]order.Order{
			"asc": {order.P("email", order.Asc)},
		}},
		{"updatedAt", []string{"desc"}, map[string]order.Order{
			"desc": {order.P("updatedAt", order.Desc)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			spec, ok := r.Lookup(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.cycle, spec.Order)
			if diff := cmp.Diff(tt.values, spec.Values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, spec.Usable())
		})
	}
}

func TestBuildExplicit(t *testing.T) {
	fc := options.Explicit(
		options.Opt("newest", []any{[]any{"createdAt", "desc"}, "name"}),
		options.Opt("oldest", map[string]int{"createdAt": 1}),
	)

	r, err := Build(map[string]options.FieldConfig{"created": fc})
	require.NoError(t, err)

	spec, ok := r.Lookup("created")
	require.True(t, ok)
	assert.Equal(t, []string{"newest", "oldest"}, spec.Order)

	v, ok := spec.Value("newest")
	require.True(t, ok)
	assert.Equal(t, "createdAt:desc,name:asc", order.Encode(v))
}

func TestBuildExplicitOrder(t *testing.T) {
	fc := options.Explicit(
		options.Opt("a", []string{"x"}),
		options.Opt("b", []string{"y"}),
		options.Opt("c", []string{"z"}),
	).WithOrder("c", "a")

	r, err := Build(map[string]options.FieldConfig{"f": fc})
	require.NoError(t, err)

	spec, _ := r.Lookup("f")
	assert.Equal(t, []string{"c", "a"}, spec.Order)
	assert.Equal(t, []string{"c", "a", "b"}, spec.Labels())
}

func TestBuildRejectsUnknownOrderLabel(t *testing.T) {
	fc := options.Explicit(options.Opt("a", []string{"x"})).WithOrder("a", "missing")

	_, err := Build(map[string]options.FieldConfig{"f": fc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestBuildRejectsUnknownShorthand(t *testing.T) {
	_, err := Build(map[string]options.FieldConfig{"f": options.Field("sideways")})
	require.Error(t, err)
}

func TestBuildRejectsInvalidOptionValue(t *testing.T) {
	_, err := Build(map[string]options.FieldConfig{"f": options.Explicit(options.Opt("a", 3))})
	require.Error(t, err)
	assert.True(t, order.IsSpecifierError(err))
}

func TestValueIsCopy(t *testing.T) {
	r, err := Build(map[string]options.FieldConfig{"name": options.Field(options.ShorthandAsc)})
	require.NoError(t, err)

	spec, _ := r.Lookup("name")
	v, _ := spec.Value("asc")
	v[0].Direction = order.Desc

	again, _ := spec.Value("asc")
	assert.Equal(t, order.Asc, again[0].Direction)
}

func TestCurrentAndNext(t *testing.T) {
	r, err := Build(map[string]options.FieldConfig{"createdAt": options.Field(options.ShorthandDesc)})
	require.NoError(t, err)
	spec, _ := r.Lookup("createdAt")

	tests := []struct {
		name      string
		current   order.Order
		wrap      bool
		wantIndex int
		wantLabel string
		wantOK    bool
	}{
		{"unsorted starts cycle", order.Order{order.P("name", order.Asc)}, false, -1, "desc", true},
		{"desc moves to asc", order.Order{order.P("createdAt", order.Desc), order.P("name", order.Asc)}, false, 0, "asc", true},
		{"asc exhausts cycle", order.Order{order.P("createdAt", order.Asc)}, false, 1, "", false},
		{"asc wraps", order.Order{order.P("createdAt", order.Asc)}, true, 1, "desc", true},
		{"field not leading", order.Order{order.P("name", order.Asc), order.P("createdAt", order.Desc)}, false, -1, "desc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIndex, spec.Current(tt.current))
			label, ok := spec.Next(tt.current, tt.wrap)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestUsable(t *testing.T) {
	var nilSpec *FieldSpec
	assert.False(t, nilSpec.Usable())

	r, err := Build(map[string]options.FieldConfig{"empty": options.Explicit()})
	require.NoError(t, err)
	spec, ok := r.Lookup("empty")
	require.True(t, ok)
	assert.False(t, spec.Usable())
}

func TestLookupUnknown(t *testing.T) {
	r, err := Build(nil)
	require.NoError(t, err)
	_, ok := r.Lookup("nope")
	assert.False(t, ok)
	assert.Empty(t, r.Names())
}
