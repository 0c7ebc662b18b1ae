package harness

import "fmt"

// SuiteResult aggregates the results of several scenarios.
type SuiteResult struct {
	Total    int                `json:"total"`
	Passed   int                `json:"passed"`
	Failed   int                `json:"failed"`
	Results  map[string]*Result `json:"results"`
	Failures []string           `json:"failures,omitempty"`
}

// Pass reports whether every scenario passed.
func (r *SuiteResult) Pass() bool {
	return r.Failed == 0
}

// RunAll executes scenarios in order. A scenario that cannot start counts
// as failed; the others still run.
func RunAll(scenarios []*Scenario, opts ...RunOption) *SuiteResult {
	out := &SuiteResult{Results: make(map[string]*Result, len(scenarios))}
	for _, s := range scenarios {
		out.Total++

		result, err := Run(s, opts...)
		if err != nil {
			out.Failed++
			out.Failures = append(out.Failures, fmt.Sprintf("%s: %v", s.Name, err))
			continue
		}
		out.Results[s.Name] = result
		if !result.Pass {
			out.Failed++
			for _, e := range result.Errors {
				out.Failures = append(out.Failures, fmt.Sprintf("%s: %s", s.Name, e))
			}
			continue
		}
		out.Passed++
	}
	return out
}
