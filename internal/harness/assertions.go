package harness

import (
	"fmt"
	"strings"
)

// Assertion types.
const (
	AssertFinalValue    = "final_value"
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertRerunCount    = "rerun_count"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %q\n", ev.Step, ev.Op, ev.Args, ev.Value)
		}
	}
	return buf.String()
}

func assertFinalValue(r *Result, a Assertion) error {
	if r.Final == a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalValue,
		Expected: fmt.Sprintf("%q", a.Value),
		Actual:   fmt.Sprintf("%q", r.Final),
		Trace:    r.Trace,
	}
}

func assertTraceContains(r *Result, a Assertion) error {
	for _, ev := range r.Trace {
		if ev.Value == a.Value {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("value %q", a.Value),
		Actual:   "not found in trace",
		Trace:    r.Trace,
	}
}

// assertTraceOrder checks that values appear in order. Other values may
// appear in between and a value may be matched by any later step.
func assertTraceOrder(r *Result, a Assertion) error {
	next := 0
	for _, ev := range r.Trace {
		if next < len(a.Values) && ev.Value == a.Values[next] {
			next++
		}
	}
	if next == len(a.Values) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("values in order: %v", a.Values),
		Actual:   fmt.Sprintf("missing %q after %d matched", a.Values[next], next),
		Trace:    r.Trace,
	}
}

func assertRerunCount(r *Result, a Assertion) error {
	got := r.Runs[a.Observer]
	if got == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRerunCount,
		Expected: fmt.Sprintf("observer %s re-ran %d times", a.Observer, a.Count),
		Actual:   fmt.Sprintf("%d times", got),
		Trace:    r.Trace,
	}
}

// EvaluateAssertions runs every assertion against r and returns all
// failures.
func EvaluateAssertions(r *Result, assertions []Assertion) []error {
	var errs []error
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertFinalValue:
			err = assertFinalValue(r, a)
		case AssertTraceContains:
			err = assertTraceContains(r, a)
		case AssertTraceOrder:
			err = assertTraceOrder(r, a)
		case AssertRerunCount:
			err = assertRerunCount(r, a)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
