// Package order provides the sort order codec.
//
// A sort order is an ordered sequence of (field, direction) pairs. Earlier
// pairs take sorting precedence. This package converts between three
// representations:
//
//	loose input   {"name": 1, "createdAt": -1}, ["name", ["age", "desc"]]
//	canonical     Order{{"name", Asc}, {"createdAt", Desc}}
//	encoded       "name:asc,createdAt:desc"
//
// The encoded form is a stable string key. It is used as the identity of a
// sort order (dependency table keys, change detection) but never for prefix
// comparison: Order.HasPrefix compares decoded pairs, so field names that
// are string prefixes of one another ("a" and "ab") cannot collide.
//
// INVARIANTS:
//   - Direction is exactly Asc or Desc
//   - Field names are non-empty, NFC normalized, and contain neither
//     PairSeparator nor FieldSeparator
//   - Decode(Encode(o)) equals o for every Order accepted by Normalize
//
// Map inputs:
// Go maps have no iteration order. Normalize sorts plain map keys so the
// result is deterministic. Use FromYAML or FromJSON when the key order of an
// object literal is significant ({"b": 1, "a": 1} sorts by b first).
package order
