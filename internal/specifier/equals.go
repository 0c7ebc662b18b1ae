package specifier

import (
	"github.com/roach88/sortspec/internal/order"
)

// Equals reports whether the current order starts with value.
//
// A string is a field name and behaves like EqualsField. Any other value
// is normalized with order.Normalize; one that cannot be fails with
// INVALID_SORT_SPECIFIER.
func (s *SortSpecifier) Equals(value any) (bool, error) {
	if field, ok := value.(string); ok {
		return s.EqualsField(field), nil
	}
	o, err := order.Normalize(value)
	if err != nil {
		return false, &Error{Code: ErrCodeInvalidSortSpecifier, Message: "cannot normalize sort specifier", Err: err}
	}
	return s.leads(o), nil
}

// EqualsField reports whether the current order starts with any value
// configured for field. Values are tried in cycle order and the first
// match wins, so only values up to the match are depended on.
// Unknown fields are false.
func (s *SortSpecifier) EqualsField(field string) bool {
	spec, ok := s.registry.Lookup(field)
	if !ok {
		return false
	}
	for _, label := range spec.Labels() {
		v := spec.Values[label]
		if len(v) > 0 && s.leads(v) {
			return true
		}
	}
	return false
}

// EqualsDirection reports whether the current order starts with the value
// configured for field and direction (or label). Unknown fields and
// directions are false and register nothing.
func (s *SortSpecifier) EqualsDirection(field, direction string) bool {
	spec, ok := s.registry.Lookup(field)
	if !ok {
		return false
	}
	v, ok := spec.Values[direction]
	if !ok || len(v) == 0 {
		return false
	}
	return s.leads(v)
}

// leads depends on the fact "current starts with o" and returns it.
func (s *SortSpecifier) leads(o order.Order) bool {
	e := s.entry(o)
	e.dep.Depend()
	return s.current.HasPrefix(e.order)
}

func (s *SortSpecifier) entry(o order.Order) *equalsEntry {
	key := order.Encode(o)
	if e, ok := s.equals[key]; ok {
		return e
	}

	e := &equalsEntry{order: o.Clone(), dep: s.source.NewDependency()}
	s.equals[key] = e
	s.equalsKeys = append(s.equalsKeys, key)

	if s.equalsLimit > 0 && len(s.equalsKeys) > s.equalsLimit && !s.warnedLimit {
		s.warnedLimit = true
		s.logger.Warn("equals dependency table exceeds limit",
			"size", len(s.equalsKeys),
			"limit", s.equalsLimit,
		)
	}
	return e
}

// matching returns, aligned with equalsKeys, whether each queried value
// leads o.
func (s *SortSpecifier) matching(o order.Order) []bool {
	out := make([]bool, len(s.equalsKeys))
	for i, k := range s.equalsKeys {
		out[i] = o.HasPrefix(s.equals[k].order)
	}
	return out
}
