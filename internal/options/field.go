package options

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortspec/internal/order"
)

// Shorthand names a built-in toggle cycle.
type Shorthand string

// Built-in shorthands. The label of each option is its direction.
const (
	ShorthandAsc      Shorthand = "asc"      // asc, then desc
	ShorthandDesc     Shorthand = "desc"     // desc, then asc
	ShorthandAscOnly  Shorthand = "asconly"  // asc only
	ShorthandDescOnly Shorthand = "desconly" // desc only
)

// Option is one labelled toggle state of a field.
// Value is any shape accepted by order.Normalize.
type Option struct {
	Label string
	Value any
}

// Opt is shorthand for an Option literal.
func Opt(label string, value any) Option {
	return Option{Label: label, Value: value}
}

// FieldConfig configures how a field toggles. Exactly one of Shorthand or
// Options is set. Order optionally reorders the labels of Options; when
// empty the cycle follows Options in declaration order.
type FieldConfig struct {
	Shorthand Shorthand
	Options   []Option
	Order     []string
}

// Field returns a shorthand field configuration.
func Field(s Shorthand) FieldConfig {
	return FieldConfig{Shorthand: s}
}

// Explicit returns an explicit field configuration.
func Explicit(opts ...Option) FieldConfig {
	return FieldConfig{Options: opts}
}

// WithOrder returns a copy of f cycling through labels in the given order.
func (f FieldConfig) WithOrder(labels ...string) FieldConfig {
	f.Order = append([]string(nil), labels...)
	return f
}

// IsShorthand reports whether f uses a built-in cycle.
func (f FieldConfig) IsShorthand() bool {
	return f.Shorthand != ""
}

// check runs the Go-side structural checks for one field.
func (f FieldConfig) check(path string) ValidationErrors {
	var errs ValidationErrors

	if f.IsShorthand() {
		if len(f.Options) > 0 || len(f.Order) > 0 {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("shorthand %q cannot be combined with options or order", f.Shorthand),
			})
		}
		return errs
	}

	labels := make(map[string]bool, len(f.Options))
	for _, opt := range f.Options {
		if opt.Label == "" {
			errs = append(errs, ValidationError{Field: path + ".options", Message: "option label must not be empty"})
			continue
		}
		if labels[opt.Label] {
			errs = append(errs, ValidationError{
				Field:   path + ".options." + opt.Label,
				Message: "duplicate option label",
			})
		}
		labels[opt.Label] = true

		if _, err := order.Normalize(opt.Value); err != nil {
			errs = append(errs, ValidationError{Field: path + ".options." + opt.Label, Message: err.Error()})
		}
	}

	for i, label := range f.Order {
		if !labels[label] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.order[%d]", path, i),
				Message: fmt.Sprintf("label %q is not one of the field's options", label),
			})
		}
	}

	return errs
}

// UnmarshalYAML accepts the three field forms:
//
//	name: asc                          # shorthand
//	name: {options: {...}, order: [..]} # explicit
//	name: {up: [[name, asc]], ...}      # bare options mapping
//
// Option values are normalized eagerly so errors carry source lines.
func (f *FieldConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*f = FieldConfig{Shorthand: Shorthand(node.Value)}
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: field must be a shorthand or a mapping", node.Line)
	}

	optionsNode := node
	var orderNode *yaml.Node
	if v := mappingValue(node, "options"); v != nil {
		optionsNode = v
		orderNode = mappingValue(node, "order")
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "options", "order":
			default:
				return fmt.Errorf("line %d: unknown key %q in explicit field", node.Content[i].Line, key)
			}
		}
	}
	if optionsNode.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: options must be a mapping of label to sort order", optionsNode.Line)
	}

	out := FieldConfig{Options: make([]Option, 0, len(optionsNode.Content)/2)}
	for i := 0; i+1 < len(optionsNode.Content); i += 2 {
		label := optionsNode.Content[i]
		value, err := order.FromYAML(optionsNode.Content[i+1])
		if err != nil {
			return fmt.Errorf("line %d: option %q: %w", label.Line, label.Value, err)
		}
		out.Options = append(out.Options, Option{Label: label.Value, Value: value})
	}

	if orderNode != nil {
		if err := orderNode.Decode(&out.Order); err != nil {
			return fmt.Errorf("line %d: order must be a list of labels: %w", orderNode.Line, err)
		}
	}

	*f = out
	return nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
