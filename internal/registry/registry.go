// Package registry builds the per-field toggle configuration of a sort
// specifier.
//
// A Registry is built once from options.FieldConfig values and is immutable
// afterwards, so it may be read from any number of goroutines.
package registry

import (
	"fmt"
	"sort"

	"github.com/roach88/sortspec/internal/options"
	"github.com/roach88/sortspec/internal/order"
)

// FieldSpec is the resolved configuration of one field.
type FieldSpec struct {
	// Name is the configured field name.
	Name string

	// Order is the sequence of labels a toggle cycles through.
	Order []string

	// Values maps each label to the sort order it selects. For shorthand
	// fields the labels are directions and each value sorts by the field
	// alone; explicit fields may map labels to any composite order.
	Values map[string]order.Order

	// labels holds every label in declaration order.
	labels []string
}

// Value returns a copy of the sort order selected by label.
func (s *FieldSpec) Value(label string) (order.Order, bool) {
	v, ok := s.Values[label]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Labels returns every label of the field: the cycle order first, then any
// declared label the cycle skips.
func (s *FieldSpec) Labels() []string {
	out := make([]string, 0, len(s.labels))
	seen := make(map[string]bool, len(s.labels))
	for _, l := range s.Order {
		if !seen[l] {
			out = append(out, l)
			seen[l] = true
		}
	}
	for _, l := range s.labels {
		if !seen[l] {
			out = append(out, l)
			seen[l] = true
		}
	}
	return out
}

// Usable reports whether the field can be toggled: it has a non-empty cycle
// and every label in it selects a value.
func (s *FieldSpec) Usable() bool {
	if s == nil || len(s.Order) == 0 {
		return false
	}
	for _, l := range s.Order {
		if _, ok := s.Values[l]; !ok {
			return false
		}
	}
	return true
}

// Current returns the index in Order of the first label whose value leads
// current, or -1 when none does.
func (s *FieldSpec) Current(current order.Order) int {
	for i, l := range s.Order {
		if v, ok := s.Values[l]; ok && current.HasPrefix(v) {
			return i
		}
	}
	return -1
}

// Next returns the label that follows the field's current label in the
// cycle. When the cycle is exhausted it wraps to the first label if wrap is
// set and otherwise returns ok=false, meaning the field is cleared.
func (s *FieldSpec) Next(current order.Order, wrap bool) (label string, ok bool) {
	i := s.Current(current) + 1
	if i < len(s.Order) {
		return s.Order[i], true
	}
	if wrap && len(s.Order) > 0 {
		return s.Order[0], true
	}
	return "", false
}

// Registry maps field names to their FieldSpec.
type Registry struct {
	fields map[string]*FieldSpec
}

// Build resolves field configurations into a Registry.
// It fails if a shorthand is unknown, an option value cannot be normalized,
// or an explicit order names a label the field does not define.
func Build(fields map[string]options.FieldConfig) (*Registry, error) {
	r := &Registry{fields: make(map[string]*FieldSpec, len(fields))}
	for name, fc := range fields {
		spec, err := buildField(name, fc)
		if err != nil {
			return nil, err
		}
		r.fields[name] = spec
	}
	return r, nil
}

func buildField(name string, fc options.FieldConfig) (*FieldSpec, error) {
	if fc.IsShorthand() {
		return shorthand(name, fc.Shorthand)
	}

	spec := &FieldSpec{
		Name:   name,
		Values: make(map[string]order.Order, len(fc.Options)),
		labels: make([]string, 0, len(fc.Options)),
	}
	for _, opt := range fc.Options {
		v, err := order.Normalize(opt.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q option %q: %w", name, opt.Label, err)
		}
		spec.Values[opt.Label] = v
		spec.labels = append(spec.labels, opt.Label)
	}

	if len(fc.Order) == 0 {
		spec.Order = append([]string(nil), spec.labels...)
		return spec, nil
	}
	for _, l := range fc.Order {
		if _, ok := spec.Values[l]; !ok {
			return nil, fmt.Errorf("field %q: order label %q has no option", name, l)
		}
	}
	spec.Order = append([]string(nil), fc.Order...)
	return spec, nil
}

func shorthand(name string, s options.Shorthand) (*FieldSpec, error) {
	var cycle []order.Direction
	switch s {
	case options.ShorthandAsc:
		cycle = []order.Direction{order.Asc, order.Desc}
	case options.ShorthandDesc:
		cycle = []order.Direction{order.Desc, order.Asc}
	case options.ShorthandAscOnly:
		cycle = []order.Direction{order.Asc}
	case options.ShorthandDescOnly:
		cycle = []order.Direction{order.Desc}
	default:
		return nil, fmt.Errorf("field %q: unknown shorthand %q", name, s)
	}

	only, err := order.Normalize([]string{name})
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	field := only[0].Field

	spec := &FieldSpec{Name: name, Values: make(map[string]order.Order, len(cycle))}
	for _, d := range cycle {
		spec.Order = append(spec.Order, string(d))
		spec.Values[string(d)] = order.Order{order.P(field, d)}
	}
	// Declaration order is asc before desc regardless of the cycle.
	for _, d := range []order.Direction{order.Asc, order.Desc} {
		if _, ok := spec.Values[string(d)]; ok {
			spec.labels = append(spec.labels, string(d))
		}
	}
	return spec, nil
}

// Lookup returns the spec of a configured field.
func (r *Registry) Lookup(name string) (*FieldSpec, bool) {
	s, ok := r.fields[name]
	return s, ok
}

// Names returns the configured field names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fields))
	for n := range r.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of configured fields.
func (r *Registry) Len() int {
	return len(r.fields)
}
