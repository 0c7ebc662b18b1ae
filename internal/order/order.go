package order

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reserved separators of the encoded form.
const (
	PairSeparator  = ","
	FieldSeparator = ":"
)

// Direction is a sort direction token.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is one of the two direction tokens.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Pair is a single (field, direction) sort key.
type Pair struct {
	Field     string
	Direction Direction
}

// P is a shorthand constructor for Pair.
func P(field string, dir Direction) Pair {
	return Pair{Field: field, Direction: dir}
}

// String returns the encoded form of the pair ("field:dir").
func (p Pair) String() string {
	return p.Field + FieldSeparator + string(p.Direction)
}

// MarshalJSON encodes the pair as a two element array, the shape query
// layers expect: ["field", "asc"].
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Field, string(p.Direction)})
}

// UnmarshalJSON accepts the two element array form.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var raw [2]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pair must be [field, direction]: %w", err)
	}
	pair, err := makePair(raw[0], Direction(raw[1]))
	if err != nil {
		return err
	}
	*p = pair
	return nil
}

// Order is the canonical sort order. The zero value is the empty order.
type Order []Pair

// Encode returns the encoded string for o. The empty order encodes to "".
func Encode(o Order) string {
	var b strings.Builder
	for i, p := range o {
		if i > 0 {
			b.WriteString(PairSeparator)
		}
		b.WriteString(p.Field)
		b.WriteString(FieldSeparator)
		b.WriteString(string(p.Direction))
	}
	return b.String()
}

// Decode parses an encoded string back into an Order.
// Decode("") is the empty order. A string without PairSeparator is a single
// pair.
func Decode(s string) (Order, error) {
	if s == "" {
		return Order{}, nil
	}
	parts := strings.Split(s, PairSeparator)
	o := make(Order, 0, len(parts))
	for i, part := range parts {
		field, dir, ok := strings.Cut(part, FieldSeparator)
		if !ok {
			return nil, &SpecifierError{Index: i, Reason: fmt.Sprintf("encoded pair %q has no direction", part)}
		}
		p, err := makePair(field, Direction(dir))
		if err != nil {
			return nil, withIndex(err, i)
		}
		o = append(o, p)
	}
	return o, nil
}

// MustDecode is Decode for literals in tests and fixed configuration.
// It panics on malformed input.
func MustDecode(s string) Order {
	o, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return o
}

// String returns Encode(o).
func (o Order) String() string {
	return Encode(o)
}

// Clone returns a copy that shares no backing array with o.
func (o Order) Clone() Order {
	if o == nil {
		return Order{}
	}
	c := make(Order, len(o))
	copy(c, o)
	return c
}

// Equal reports whether o and other contain the same pairs in the same order.
func (o Order) Equal(other Order) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a leading subsequence of o.
// The empty order is a prefix of every order.
func (o Order) HasPrefix(prefix Order) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i := range prefix {
		if o[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Fields returns the field names of o in order.
func (o Order) Fields() []string {
	fields := make([]string, len(o))
	for i, p := range o {
		fields[i] = p.Field
	}
	return fields
}

// Contains reports whether field appears in o.
func (o Order) Contains(field string) bool {
	for _, p := range o {
		if p.Field == field {
			return true
		}
	}
	return false
}

// Merge returns o followed by every pair of tail whose field is not already
// present in o. Fields in o always win; the result has no duplicate fields
// contributed by tail.
func (o Order) Merge(tail Order) Order {
	merged := make(Order, 0, len(o)+len(tail))
	merged = append(merged, o...)
	for _, p := range tail {
		if !o.Contains(p.Field) {
			merged = append(merged, p)
		}
	}
	return merged
}

// Pairs returns o as [field, direction] string pairs, the plain data shape
// used for schema validation and JSON output.
func (o Order) Pairs() [][]string {
	out := make([][]string, len(o))
	for i, p := range o {
		out[i] = []string{p.Field, string(p.Direction)}
	}
	return out
}
