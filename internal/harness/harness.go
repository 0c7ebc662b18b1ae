package harness

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortspec/internal/order"
	"github.com/roach88/sortspec/internal/reactive"
	"github.com/roach88/sortspec/internal/specifier"
	"github.com/roach88/sortspec/internal/testutil"
)

// observer is a running Observer.
type observer struct {
	name   string
	comp   *reactive.Computation
	answer bool
	err    error
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sends specifier and tracker logs to l. By default they are
// discarded.
func WithLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes a scenario against a fresh specifier and tracker.
//
// Step errors and failed expectations are recorded in the Result and do
// not stop the run. The returned error is reserved for scenarios that
// cannot start: invalid options or an observer that cannot be evaluated.
func Run(s *Scenario, opts ...RunOption) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger.With("scenario", s.Name)

	tr := reactive.New(
		reactive.WithLogger(logger),
		reactive.WithClock(testutil.NewDeterministicClock()),
		reactive.WithIDGenerator(testutil.FixedIDGenerator(s.Name)),
	)

	specOpts := []specifier.Option{
		specifier.WithDependencies(tr),
		specifier.WithLogger(logger),
	}
	if s.StrictToggle {
		specOpts = append(specOpts, specifier.WithStrictToggle())
	}
	spec, err := specifier.New(s.Options.Options(), specOpts...)
	if err != nil {
		return nil, fmt.Errorf("create specifier: %w", err)
	}

	observers := make([]*observer, 0, len(s.Observers))
	byName := make(map[string]*observer, len(s.Observers))
	for _, def := range s.Observers {
		o, err := startObserver(tr, spec, def)
		if err != nil {
			return nil, err
		}
		observers = append(observers, o)
		byName[o.name] = o
	}

	result := NewResult()
	for i, step := range s.Steps {
		before := make(map[string]int, len(observers))
		for _, o := range observers {
			before[o.name] = o.comp.Runs()
		}

		stepErr := apply(spec, step)
		if err := tr.Flush(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		ev := TraceEvent{
			Step:  i + 1,
			Op:    step.Op(),
			Args:  stepArgs(step),
			Value: spec.String(),
			Seq:   tr.Clock().Current(),
		}
		for _, o := range observers {
			if n := o.comp.Runs() - before[o.name]; n > 0 {
				if ev.Reruns == nil {
					ev.Reruns = make(map[string]int)
				}
				ev.Reruns[o.name] = n
				result.Runs[o.name] += n
			}
		}
		if stepErr != nil {
			ev.Error = errorCode(stepErr)
		}
		result.AddTrace(ev)

		if step.Expect != nil {
			for _, msg := range checkExpect(ev, step.Expect, byName, stepErr) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", ev.Step, ev.Op, msg))
			}
		}
	}

	for _, o := range observers {
		o.comp.Stop()
	}

	result.Final = spec.String()
	for _, err := range EvaluateAssertions(result, s.Assertions) {
		result.AddError(err.Error())
	}
	return result, nil
}

func startObserver(tr *reactive.Tracker, spec *specifier.SortSpecifier, def Observer) (*observer, error) {
	o := &observer{name: def.Name}

	var read func() (bool, error)
	switch {
	case def.Get:
		read = func() (bool, error) {
			spec.Get()
			return false, nil
		}
	case def.Field != "":
		read = func() (bool, error) { return spec.EqualsField(def.Field), nil }
	case def.Equals != nil:
		read = func() (bool, error) { return spec.EqualsDirection(def.Equals[0], def.Equals[1]), nil }
	default:
		value := def.Value
		read = func() (bool, error) { return spec.Equals(&value) }
	}

	o.comp = tr.Autorun(func(*reactive.Computation) {
		o.answer, o.err = read()
	})
	if o.err != nil {
		o.comp.Stop()
		return nil, fmt.Errorf("observer %s: %w", def.Name, o.err)
	}
	return o, nil
}

func apply(spec *specifier.SortSpecifier, step Step) error {
	switch step.Op() {
	case "set":
		return spec.Set(nodeArg(&step.Set))
	case "set_field":
		return spec.SetField(step.SetField[0], step.SetField[1])
	case "reset":
		spec.Reset()
		return nil
	case "toggle":
		return spec.Toggle(step.Toggle)
	case "apply":
		args := make([]any, len(step.Apply.Content))
		for i, n := range step.Apply.Content {
			args[i] = nodeArg(n)
		}
		return spec.Apply(args...)
	}
	return fmt.Errorf("step has no operation")
}

// nodeArg converts a YAML argument to the Go value a caller would pass:
// scalars become nil, bool, number or string and collections stay nodes.
func nodeArg(n *yaml.Node) any {
	if n.Kind != yaml.ScalarNode {
		return n
	}
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return n.Value
		}
		return b
	case "!!int":
		i, err := strconv.Atoi(n.Value)
		if err != nil {
			return n.Value
		}
		return i
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return n.Value
		}
		return f
	}
	return n.Value
}

func stepArgs(step Step) []string {
	switch step.Op() {
	case "set":
		return []string{renderNode(&step.Set)}
	case "set_field":
		return append([]string(nil), step.SetField...)
	case "toggle":
		return []string{step.Toggle}
	case "apply":
		out := make([]string, len(step.Apply.Content))
		for i, n := range step.Apply.Content {
			out[i] = renderNode(n)
		}
		return out
	}
	return nil
}

// renderNode prints scalars as written and collections as encoded orders.
func renderNode(n *yaml.Node) string {
	if n.Kind == yaml.ScalarNode {
		if n.Tag == "!!null" {
			return "null"
		}
		return n.Value
	}
	o, err := order.FromYAML(n)
	if err != nil {
		return "invalid"
	}
	return order.Encode(o)
}

func errorCode(err error) string {
	if code := specifier.CodeOf(err); code != "" {
		return string(code)
	}
	return err.Error()
}

func checkExpect(ev TraceEvent, want *Expect, observers map[string]*observer, stepErr error) []string {
	var msgs []string

	switch {
	case want.Error == "" && stepErr != nil:
		msgs = append(msgs, fmt.Sprintf("unexpected error: %v", stepErr))
	case want.Error != "" && ev.Error != want.Error:
		msgs = append(msgs, fmt.Sprintf("error: expected %s, got %q", want.Error, ev.Error))
	}

	if want.Get.Kind != 0 {
		expected, err := expectedValue(&want.Get)
		switch {
		case err != nil:
			msgs = append(msgs, fmt.Sprintf("expect.get: %v", err))
		case expected != ev.Value:
			msgs = append(msgs, fmt.Sprintf("value: expected %q, got %q", expected, ev.Value))
		}
	}

	for _, name := range sortedKeys(want.Equals) {
		if got := observers[name].answer; got != want.Equals[name] {
			msgs = append(msgs, fmt.Sprintf("observer %s: expected %t, got %t", name, want.Equals[name], got))
		}
	}
	for _, name := range sortedKeys(want.Reruns) {
		if got := ev.Reruns[name]; got != want.Reruns[name] {
			msgs = append(msgs, fmt.Sprintf("observer %s: expected %d re-runs, got %d", name, want.Reruns[name], got))
		}
	}
	return msgs
}

// expectedValue encodes an expected value. A string is already encoded.
func expectedValue(n *yaml.Node) (string, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		o, err := order.Decode(n.Value)
		if err != nil {
			return "", err
		}
		return order.Encode(o), nil
	}
	o, err := order.FromYAML(n)
	if err != nil {
		return "", err
	}
	return order.Encode(o), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
