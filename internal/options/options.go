// Package options defines the construction options of a sort specifier,
// their defaults, YAML loading, and schema validation.
//
// Options are validated in two passes. Structural checks that need Go
// values (normalizing sort orders, explicit toggle orders naming known
// labels) run first; the result is then encoded into a CUE value and
// unified with the closed #Options definition in schema.go.
package options

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortspec/internal/order"
)

// AppendMode selects what a partial sort order is completed with.
type AppendMode string

const (
	// AppendPrevious appends the order being replaced.
	AppendPrevious AppendMode = "previous"
	// AppendDefault appends the configured default order.
	AppendDefault AppendMode = "default"
	// AppendNone appends nothing. YAML `append: false` decodes to this.
	AppendNone AppendMode = "none"
)

// Options are the construction options of a sort specifier.
// All keys are optional except Fields.
type Options struct {
	// Fields maps field names to their toggle configuration. Required.
	Fields map[string]FieldConfig

	// DefaultSort is any value accepted by order.Normalize. Used by reset,
	// by setting a falsy value, and by AppendDefault.
	DefaultSort any

	// ToggleReset controls whether exhausting a field's cycle clears it
	// (true, the default) or wraps around to the first direction.
	ToggleReset *bool

	// Append defaults to AppendPrevious.
	Append AppendMode
}

// Resolved is a validated Options value with defaults applied.
type Resolved struct {
	Fields      map[string]FieldConfig
	DefaultSort order.Order
	ToggleReset bool
	Append      AppendMode
}

// Defaults returns the options used for every key left unset.
func Defaults() Options {
	return Options{
		Fields:      map[string]FieldConfig{},
		DefaultSort: order.Order{},
		ToggleReset: Bool(true),
		Append:      AppendPrevious,
	}
}

// Bool returns a pointer to b, for ToggleReset literals.
func Bool(b bool) *bool {
	return &b
}

// Resolve applies defaults and validates o.
// Returns ValidationErrors describing every problem found.
func (o Options) Resolve() (Resolved, error) {
	var errs ValidationErrors

	if o.Fields == nil {
		errs = append(errs, ValidationError{Field: "fields", Message: "fields is required"})
	}

	defaultSort, err := order.Normalize(o.DefaultSort)
	if err != nil {
		errs = append(errs, ValidationError{Field: "defaultSort", Message: err.Error()})
	}

	for name, fc := range o.Fields {
		errs = append(errs, fc.check("fields."+name)...)
	}

	if len(errs) > 0 {
		return Resolved{}, errs
	}

	if err := validateSchema(o, defaultSort); err != nil {
		return Resolved{}, err
	}

	r := Resolved{
		Fields:      o.Fields,
		DefaultSort: defaultSort,
		ToggleReset: true,
		Append:      AppendPrevious,
	}
	if o.ToggleReset != nil {
		r.ToggleReset = *o.ToggleReset
	}
	if o.Append != "" {
		r.Append = o.Append
	}
	return r, nil
}

// String implements fmt.Stringer for log output.
func (m AppendMode) String() string {
	if m == "" {
		return string(AppendPrevious)
	}
	return string(m)
}

// UnmarshalYAML maps `append: false` to AppendNone. Other values are kept
// as written and checked against the schema.
func (m *AppendMode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: append must be a scalar", node.Line)
	}
	if node.Tag == "!!bool" {
		if b, err := strconv.ParseBool(node.Value); err == nil && !b {
			*m = AppendNone
			return nil
		}
	}
	*m = AppendMode(node.Value)
	return nil
}
