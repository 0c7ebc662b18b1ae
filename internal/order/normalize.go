package order

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Normalize converts a loose sort specifier into a canonical Order.
//
// Accepted shapes:
//   - nil: the empty order
//   - Order, []Pair, Pair: validated and copied
//   - []string: every field ascending
//   - [][]string, [][2]string: explicit [field, direction] pairs
//   - []any: elements are a bare field name (ascending) or a
//     [field, direction] pair
//   - map[string]V with numeric V: -1 is descending, anything else
//     ascending; keys are sorted because Go maps are unordered
//   - *yaml.Node, yaml.Node: mapping or sequence, source key order kept
//   - json.RawMessage: JSON object or array, source key order kept
//
// Any other shape fails with a *SpecifierError.
func Normalize(v any) (Order, error) {
	switch val := v.(type) {
	case nil:
		return Order{}, nil
	case Order:
		return validate(val)
	case []Pair:
		return validate(Order(val))
	case Pair:
		return validate(Order{val})
	case []string:
		o := make(Order, 0, len(val))
		for i, field := range val {
			p, err := makePair(field, Asc)
			if err != nil {
				return nil, withIndex(err, i)
			}
			o = append(o, p)
		}
		return o, nil
	case [][]string:
		o := make(Order, 0, len(val))
		for i, raw := range val {
			if len(raw) != 2 {
				return nil, &SpecifierError{Index: i, Reason: fmt.Sprintf("pair must have 2 elements, got %d", len(raw))}
			}
			p, err := pairFrom(raw[0], raw[1])
			if err != nil {
				return nil, withIndex(err, i)
			}
			o = append(o, p)
		}
		return o, nil
	case [][2]string:
		o := make(Order, 0, len(val))
		for i, raw := range val {
			p, err := pairFrom(raw[0], raw[1])
			if err != nil {
				return nil, withIndex(err, i)
			}
			o = append(o, p)
		}
		return o, nil
	case []any:
		o := make(Order, 0, len(val))
		for i, elem := range val {
			p, err := elementToPair(elem)
			if err != nil {
				return nil, withIndex(err, i)
			}
			o = append(o, p)
		}
		return o, nil
	case map[string]int:
		return fromMap(val)
	case map[string]int64:
		return fromMap(val)
	case map[string]float64:
		return fromMap(val)
	case map[string]any:
		return fromMap(val)
	case *yaml.Node:
		return FromYAML(val)
	case yaml.Node:
		return FromYAML(&val)
	case json.RawMessage:
		return FromJSON(val)
	default:
		return nil, invalid("unsupported value of type %T", v)
	}
}

// FromJSON normalizes a JSON object or array, keeping object key order.
func FromJSON(data []byte) (Order, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, invalid("empty JSON input")
	}
	// JSON is a YAML subset; the node tree keeps object key order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, invalid("malformed JSON: %v", err)
	}
	return FromYAML(&node)
}

// FromYAML normalizes a YAML mapping or sequence node, keeping key order.
// A null scalar is the empty order.
func FromYAML(node *yaml.Node) (Order, error) {
	if node == nil {
		return Order{}, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Order{}, nil
		}
		return FromYAML(node.Content[0])
	case yaml.AliasNode:
		return FromYAML(node.Alias)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Order{}, nil
		}
		return nil, invalid("scalar %q is not a sort specifier", node.Value)
	case yaml.MappingNode:
		o := make(Order, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
				return nil, invalid("line %d: mapping entries must be field: direction", key.Line)
			}
			p, err := makePair(key.Value, directionFromNumber(value.Value))
			if err != nil {
				return nil, err
			}
			o = append(o, p)
		}
		return o, nil
	case yaml.SequenceNode:
		o := make(Order, 0, len(node.Content))
		for i, elem := range node.Content {
			p, err := nodeToPair(elem)
			if err != nil {
				return nil, withIndex(err, i)
			}
			o = append(o, p)
		}
		return o, nil
	default:
		return nil, invalid("unsupported YAML node kind %d", node.Kind)
	}
}

func nodeToPair(n *yaml.Node) (Pair, error) {
	if n.Kind == yaml.AliasNode {
		return nodeToPair(n.Alias)
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return makePair(n.Value, Asc)
	case yaml.SequenceNode:
		if len(n.Content) != 2 || n.Content[0].Kind != yaml.ScalarNode || n.Content[1].Kind != yaml.ScalarNode {
			return Pair{}, invalid("line %d: element must be a field name or [field, direction]", n.Line)
		}
		return pairFrom(n.Content[0].Value, n.Content[1].Value)
	default:
		return Pair{}, invalid("line %d: element must be a field name or [field, direction]", n.Line)
	}
}

func elementToPair(elem any) (Pair, error) {
	switch e := elem.(type) {
	case string:
		return makePair(e, Asc)
	case Pair:
		return makePair(e.Field, e.Direction)
	case [2]string:
		return pairFrom(e[0], e[1])
	case []string:
		if len(e) != 2 {
			return Pair{}, invalid("pair must have 2 elements, got %d", len(e))
		}
		return pairFrom(e[0], e[1])
	case []any:
		if len(e) != 2 {
			return Pair{}, invalid("pair must have 2 elements, got %d", len(e))
		}
		field, ok := e[0].(string)
		if !ok {
			return Pair{}, invalid("pair field must be a string, got %T", e[0])
		}
		dir, err := parseDirection(e[1])
		if err != nil {
			return Pair{}, err
		}
		return makePair(field, dir)
	default:
		return Pair{}, invalid("element must be a field name or [field, direction], got %T", elem)
	}
}

func fromMap[V any](m map[string]V) (Order, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := make(Order, 0, len(keys))
	for _, k := range keys {
		p, err := makePair(k, directionFromNumber(m[k]))
		if err != nil {
			return nil, err
		}
		o = append(o, p)
	}
	return o, nil
}

// directionFromNumber applies the numeric rule: -1 (or "-1") is descending,
// anything else ascending.
func directionFromNumber(v any) Direction {
	switch n := v.(type) {
	case int:
		if n == -1 {
			return Desc
		}
	case int64:
		if n == -1 {
			return Desc
		}
	case float64:
		if n == -1 {
			return Desc
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && f == -1 {
			return Desc
		}
	}
	return Asc
}

// parseDirection accepts a direction token or a numeric direction.
func parseDirection(v any) (Direction, error) {
	switch d := v.(type) {
	case Direction:
		if !d.Valid() {
			return "", invalid("unknown direction %q", string(d))
		}
		return d, nil
	case string:
		if Direction(d).Valid() {
			return Direction(d), nil
		}
		if f, err := strconv.ParseFloat(d, 64); err == nil && !math.IsNaN(f) {
			return directionFromNumber(f), nil
		}
		return "", invalid("unknown direction %q", d)
	case int, int64, float64:
		return directionFromNumber(d), nil
	default:
		return "", invalid("direction must be a string or number, got %T", v)
	}
}

func pairFrom(field, dir string) (Pair, error) {
	d, err := parseDirection(dir)
	if err != nil {
		return Pair{}, err
	}
	return makePair(field, d)
}

// makePair validates and canonicalizes a single pair. Field names are NFC
// normalized so composed and decomposed spellings encode identically.
func makePair(field string, dir Direction) (Pair, error) {
	if field == "" {
		return Pair{}, invalid("empty field name")
	}
	if strings.Contains(field, PairSeparator) || strings.Contains(field, FieldSeparator) {
		return Pair{}, invalid("field %q contains a reserved separator", field)
	}
	if !dir.Valid() {
		return Pair{}, invalid("unknown direction %q for field %q", string(dir), field)
	}
	return Pair{Field: norm.NFC.String(field), Direction: dir}, nil
}

func validate(o Order) (Order, error) {
	out := make(Order, 0, len(o))
	for i, p := range o {
		c, err := makePair(p.Field, p.Direction)
		if err != nil {
			return nil, withIndex(err, i)
		}
		out = append(out, c)
	}
	return out, nil
}
