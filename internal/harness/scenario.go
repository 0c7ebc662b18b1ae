package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortspec/internal/options"
)

// Scenario defines a sort specifier scenario: options, observers, steps
// and the assertions that must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options configures the specifier under test.
	Options options.File `yaml:"options"`

	// StrictToggle makes toggling an unusable field an error.
	StrictToggle bool `yaml:"strict_toggle,omitempty"`

	// Observers are computations created before the first step.
	Observers []Observer `yaml:"observers,omitempty"`

	// Steps are applied in order, each followed by a flush.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and final value.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Observer is a computation that reads the specifier. Exactly one of Get,
// Field, Equals or Value must be set.
type Observer struct {
	Name string `yaml:"name"`

	// Get reads the whole value.
	Get bool `yaml:"get,omitempty"`

	// Field asks whether the order starts with any value of the field.
	Field string `yaml:"field,omitempty"`

	// Equals is a [field, direction] pair.
	Equals []string `yaml:"equals,omitempty"`

	// Value asks whether the order starts with a loose sort specifier.
	Value yaml.Node `yaml:"value,omitempty"`
}

func (o Observer) kinds() int {
	n := 0
	if o.Get {
		n++
	}
	if o.Field != "" {
		n++
	}
	if o.Equals != nil {
		n++
	}
	if o.Value.Kind != 0 {
		n++
	}
	return n
}

// Step is one operation. Exactly one of Set, SetField, Reset, Toggle or
// Apply must be set.
type Step struct {
	// Set is a loose sort specifier. null selects the default.
	Set yaml.Node `yaml:"set,omitempty"`

	// SetField is a [field, direction] pair.
	SetField []string `yaml:"set_field,omitempty"`

	Reset bool `yaml:"reset,omitempty"`

	// Toggle names the field to toggle.
	Toggle string `yaml:"toggle,omitempty"`

	// Apply is a list of up to two loose arguments.
	Apply yaml.Node `yaml:"apply,omitempty"`

	// Expect is checked after the step's flush.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Op returns the step kind, or "" when the step has no operation.
func (s Step) Op() string {
	switch {
	case s.Set.Kind != 0:
		return "set"
	case s.SetField != nil:
		return "set_field"
	case s.Reset:
		return "reset"
	case s.Toggle != "":
		return "toggle"
	case s.Apply.Kind != 0:
		return "apply"
	}
	return ""
}

func (s Step) ops() int {
	n := 0
	for _, set := range []bool{s.Set.Kind != 0, s.SetField != nil, s.Reset, s.Toggle != "", s.Apply.Kind != 0} {
		if set {
			n++
		}
	}
	return n
}

// Expect specifies the state after a step. Unset parts are not checked.
type Expect struct {
	// Get is the expected value: an encoded string or a loose specifier.
	Get yaml.Node `yaml:"get,omitempty"`

	// Equals maps observer names to their expected answer.
	Equals map[string]bool `yaml:"equals,omitempty"`

	// Reruns maps observer names to the number of re-runs the step caused.
	Reruns map[string]int `yaml:"reruns,omitempty"`

	// Error is the expected error code, e.g. INVALID_ARGUMENT.
	Error string `yaml:"error,omitempty"`
}

// Assertion is a check over the whole run.
type Assertion struct {
	// Type is final_value, trace_contains, trace_order or rerun_count.
	Type string `yaml:"type"`

	// Value is an encoded sort order.
	Value string `yaml:"value,omitempty"`

	// Values are encoded sort orders, for trace_order.
	Values []string `yaml:"values,omitempty"`

	// Observer and Count are used by rerun_count.
	Observer string `yaml:"observer,omitempty"`
	Count    int    `yaml:"count,omitempty"`
}

var validAssertionTypes = map[string]bool{
	AssertFinalValue:    true,
	AssertTraceContains: true,
	AssertTraceOrder:    true,
	AssertRerunCount:    true,
}

// LoadScenario reads, parses and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document. Unknown keys are
// rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadDir loads every *.yaml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(paths)

	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		out = append(out, s)
	}
	return out, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps must contain at least one step")
	}

	observers := make(map[string]bool, len(s.Observers))
	for i, o := range s.Observers {
		if o.Name == "" {
			return fmt.Errorf("observers[%d]: name is required", i)
		}
		if observers[o.Name] {
			return fmt.Errorf("observers[%d]: duplicate name %q", i, o.Name)
		}
		if o.kinds() != 1 {
			return fmt.Errorf("observers[%d] %q: exactly one of get, field, equals or value is required", i, o.Name)
		}
		if o.Equals != nil && len(o.Equals) != 2 {
			return fmt.Errorf("observers[%d] %q: equals must be [field, direction]", i, o.Name)
		}
		observers[o.Name] = true
	}

	for i, step := range s.Steps {
		if step.ops() != 1 {
			return fmt.Errorf("steps[%d]: exactly one of set, set_field, reset, toggle or apply is required", i)
		}
		if step.SetField != nil && len(step.SetField) != 2 {
			return fmt.Errorf("steps[%d]: set_field must be [field, direction]", i)
		}
		if step.Apply.Kind != 0 && step.Apply.Kind != yaml.SequenceNode {
			return fmt.Errorf("steps[%d]: apply must be a list of arguments", i)
		}
		if step.Expect == nil {
			continue
		}
		for name := range step.Expect.Equals {
			if !observers[name] {
				return fmt.Errorf("steps[%d]: expect.equals names unknown observer %q", i, name)
			}
		}
		for name := range step.Expect.Reruns {
			if !observers[name] {
				return fmt.Errorf("steps[%d]: expect.reruns names unknown observer %q", i, name)
			}
		}
	}

	for i, a := range s.Assertions {
		if !validAssertionTypes[a.Type] {
			return fmt.Errorf("assertions[%d]: invalid type %q (valid: final_value, trace_contains, trace_order, rerun_count)", i, a.Type)
		}
		if a.Type == AssertRerunCount && !observers[a.Observer] {
			return fmt.Errorf("assertions[%d]: unknown observer %q", i, a.Observer)
		}
	}
	return nil
}
