package specifier

import (
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortspec/internal/options"
	"github.com/roach88/sortspec/internal/order"
	"github.com/roach88/sortspec/internal/reactive"
	"github.com/roach88/sortspec/internal/registry"
)

// SortSpecifier holds the current sort order and exposes it reactively.
type SortSpecifier struct {
	registry     *registry.Registry
	defaultOrder order.Order
	appendMode   options.AppendMode
	toggleReset  bool

	current    order.Order
	currentKey string

	source   reactive.Source
	valueDep reactive.Dependency

	// equals maps an encoded order to its dependency; equalsKeys keeps
	// insertion order so notifications are deterministic.
	equals     map[string]*equalsEntry
	equalsKeys []string

	logger       *slog.Logger
	equalsLimit  int
	warnedLimit  bool
	strictToggle bool
}

type equalsEntry struct {
	order order.Order
	dep   reactive.Dependency
}

// New validates opts and creates a SortSpecifier whose value is the
// default sort order. Invalid options fail with INVALID_OPTIONS.
func New(opts options.Options, o ...Option) (*SortSpecifier, error) {
	resolved, err := opts.Resolve()
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalidOptions, Message: "options failed validation", Err: err}
	}

	reg, err := registry.Build(resolved.Fields)
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalidOptions, Message: "fields failed to build", Err: err}
	}

	s := &SortSpecifier{
		registry:     reg,
		defaultOrder: resolved.DefaultSort,
		appendMode:   resolved.Append,
		toggleReset:  resolved.ToggleReset,
		source:       reactive.Nop,
		logger:       slog.Default(),
		equals:       make(map[string]*equalsEntry),
	}
	for _, opt := range o {
		opt(s)
	}

	s.valueDep = s.source.NewDependency()
	s.current = s.defaultOrder.Clone()
	s.currentKey = order.Encode(s.current)
	return s, nil
}

// Get returns a copy of the current sort order and depends on the value.
func (s *SortSpecifier) Get() order.Order {
	s.valueDep.Depend()
	return s.current.Clone()
}

// String returns the encoded current value without registering a read.
func (s *SortSpecifier) String() string {
	return s.currentKey
}

// Default returns a copy of the default sort order.
func (s *SortSpecifier) Default() order.Order {
	return s.defaultOrder.Clone()
}

// Fields returns the configured field names, sorted.
func (s *SortSpecifier) Fields() []string {
	return s.registry.Names()
}

// EqualsDependencies returns the number of distinct values ever queried
// through the Equals family.
func (s *SortSpecifier) EqualsDependencies() int {
	return len(s.equalsKeys)
}

// Set replaces the sort order with value.
//
// A falsy value (nil, false, "", 0, a nil YAML node) selects the default
// order. Any other value is normalized with order.Normalize and completed
// by the append mode: pairs of the appended order whose field the new
// order already names are dropped.
//
// A bare string is a field name without a direction and fails with
// INVALID_ARGUMENT; use SetField. A value that cannot be normalized fails
// with INVALID_SORT_SPECIFIER.
func (s *SortSpecifier) Set(value any) error {
	if isFalsy(value) {
		s.commit(s.defaultOrder.Clone())
		return nil
	}
	if field, ok := value.(string); ok {
		return invalidArgument(field, "field %q needs a direction", field)
	}

	next, err := order.Normalize(value)
	if err != nil {
		return &Error{Code: ErrCodeInvalidSortSpecifier, Message: "cannot normalize sort specifier", Err: err}
	}
	s.commit(next.Merge(s.appended()))
	return nil
}

// SetField replaces the sort order with the value configured for field
// and direction (or label). Nothing is appended.
func (s *SortSpecifier) SetField(field, direction string) error {
	spec, ok := s.registry.Lookup(field)
	if !ok {
		return invalidArgument(field, "unknown field %q", field)
	}
	v, ok := spec.Value(direction)
	if !ok {
		return invalidArgument(field, "field %q has no direction %q", field, direction)
	}
	s.commit(v)
	return nil
}

// Apply is Set with loose arity:
//
//	Apply()                 INVALID_ARGUMENT
//	Apply(value)            Set(value)
//	Apply(falsy, anything)  Set(nil)
//	Apply(field, direction) SetField(field, direction)
//	Apply(value, anything)  Set(value)
func (s *SortSpecifier) Apply(args ...any) error {
	switch len(args) {
	case 0:
		return invalidArgument("", "set called without arguments")
	case 1:
		return s.Set(args[0])
	case 2:
		if isFalsy(args[0]) {
			return s.Set(nil)
		}
		field, ok := args[0].(string)
		if !ok {
			return s.Set(args[0])
		}
		dir, ok := args[1].(string)
		if !ok {
			return invalidArgument(field, "direction for field %q must be a string, got %T", field, args[1])
		}
		return s.SetField(field, dir)
	default:
		return invalidArgument("", "set takes at most 2 arguments, got %d", len(args))
	}
}

// Reset restores the default sort order. Same as Set(nil).
func (s *SortSpecifier) Reset() {
	s.commit(s.defaultOrder.Clone())
}

// Toggle advances field to the next direction of its cycle.
//
// The field's current direction is the first one in the cycle whose value
// leads the current order. After the last direction the field is cleared
// (the default order is restored) or, with toggleReset false, wraps to the
// first direction. The chosen value goes through Set, so the append mode
// applies.
//
// A field that is not configured or has nothing to cycle through logs a
// warning and leaves the order unchanged, unless WithStrictToggle is set.
func (s *SortSpecifier) Toggle(field string) error {
	spec, ok := s.registry.Lookup(field)
	if !ok || !spec.Usable() {
		if s.strictToggle {
			return invalidArgument(field, "field %q cannot be toggled", field)
		}
		s.logger.Warn("could not toggle", "field", field)
		return nil
	}

	label, ok := spec.Next(s.current, !s.toggleReset)
	if !ok {
		return s.Set(nil)
	}
	v, _ := spec.Value(label)
	if len(v) == 0 {
		return s.Set(nil)
	}
	return s.Set(v)
}

func (s *SortSpecifier) appended() order.Order {
	switch s.appendMode {
	case options.AppendPrevious:
		return s.current
	case options.AppendDefault:
		return s.defaultOrder
	default:
		return nil
	}
}

// commit installs next and notifies the value dependency plus every equals
// dependency whose match flipped. Equal values notify nothing.
func (s *SortSpecifier) commit(next order.Order) {
	key := order.Encode(next)
	if key == s.currentKey {
		return
	}

	before := s.matching(s.current)
	after := s.matching(next)

	from := s.currentKey
	s.current = next
	s.currentKey = key
	s.valueDep.Changed()

	notified := 0
	// Lost matches first, then gained ones.
	for i, k := range s.equalsKeys {
		if before[i] && !after[i] {
			s.equals[k].dep.Changed()
			notified++
		}
	}
	for i, k := range s.equalsKeys {
		if after[i] && !before[i] {
			s.equals[k].dep.Changed()
			notified++
		}
	}

	s.logger.Debug("sort order changed",
		"from", from,
		"to", key,
		"notified", notified,
	)
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case int:
		return val == 0
	case float64:
		return val == 0
	case *yaml.Node:
		return val == nil
	}
	return false
}
