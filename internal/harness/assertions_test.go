package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	r := NewResult()
	r.AddTrace(TraceEvent{Step: 1, Op: "toggle", Args: []string{"a"}, Value: "a:asc"})
	r.AddTrace(TraceEvent{Step: 2, Op: "toggle", Args: []string{"b"}, Value: "b:asc,a:asc"})
	r.AddTrace(TraceEvent{Step: 3, Op: "reset", Value: ""})
	r.Final = ""
	r.Runs["value"] = 3
	return r
}

func TestEvaluateAssertions(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{"final value", Assertion{Type: AssertFinalValue, Value: ""}, ""},
		{"final value mismatch", Assertion{Type: AssertFinalValue, Value: "a:asc"}, `Expected: "a:asc"`},
		{"contains", Assertion{Type: AssertTraceContains, Value: "b:asc,a:asc"}, ""},
		{"contains missing", Assertion{Type: AssertTraceContains, Value: "c:asc"}, "not found in trace"},
		{"order", Assertion{Type: AssertTraceOrder, Values: []string{"a:asc", ""}}, ""},
		{"order reversed", Assertion{Type: AssertTraceOrder, Values: []string{"b:asc,a:asc", "a:asc"}}, `missing "a:asc" after 1 matched`},
		{"rerun count", Assertion{Type: AssertRerunCount, Observer: "value", Count: 3}, ""},
		{"rerun count mismatch", Assertion{Type: AssertRerunCount, Observer: "value", Count: 1}, "3 times"},
		{"unknown type", Assertion{Type: "bogus"}, "unknown assertion type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(sampleResult(), []Assertion{tt.assertion})
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), tt.wantErr)
		})
	}
}

func TestAssertionErrorIncludesTrace(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{{Type: AssertFinalValue, Value: "x:asc"}})
	require.Len(t, errs, 1)

	var ae *AssertionError
	require.ErrorAs(t, errs[0], &ae)
	assert.Len(t, ae.Trace, 3)
	assert.Contains(t, ae.Error(), `[2] toggle [b] -> "b:asc,a:asc"`)
}

func TestResultAddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
