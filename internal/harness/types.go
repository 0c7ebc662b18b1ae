package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	// Step is the 1-based step index.
	Step int `json:"step"`

	// Op is the step kind: set, set_field, reset, toggle or apply.
	Op string `json:"op"`

	// Args renders the step arguments. Sort orders appear encoded.
	Args []string `json:"args,omitempty"`

	// Value is the encoded sort order after the step.
	Value string `json:"value"`

	// Seq is the tracker clock after the step's flush.
	Seq int64 `json:"seq"`

	// Reruns counts observer re-runs caused by the step. Observers that
	// did not re-run are omitted.
	Reruns map[string]int `json:"reruns,omitempty"`

	// Error is the error code of a failed step.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Final is the encoded value after the last step.
	Final string `json:"final"`

	// Runs is the total number of re-runs per observer.
	Runs map[string]int `json:"runs,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Runs:   make(map[string]int),
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
