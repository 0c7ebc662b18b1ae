// Package harness runs sort specifier scenarios.
//
// A scenario builds one SortSpecifier on a reactive.Tracker, attaches
// observers (computations that read the specifier), and applies a sequence
// of steps. Every step is followed by a tracker flush, and the trace
// records the value after the step together with how many times each
// observer re-ran. Each scenario gets a fresh specifier and tracker, so
// scenarios never share state.
//
// # Scenario Format
//
//	name: toggle_cycle
//	description: "What this scenario validates"
//	options:                     # an options file, see options.File
//	  fields: {name: asc, createdAt: desc}
//	  defaultSort: {name: 1}
//	observers:
//	  - name: value
//	    get: true                # re-runs on every change
//	  - name: created_desc
//	    equals: [createdAt, desc]
//	  - name: any_name
//	    field: name
//	  - name: by_created
//	    value: [[createdAt, desc]]
//	steps:
//	  - toggle: createdAt
//	    expect:
//	      get: [[createdAt, desc], [name, asc]]
//	      equals: {created_desc: true}
//	      reruns: {value: 1, any_name: 0}
//	  - set_field: [name, up]
//	    expect:
//	      error: INVALID_ARGUMENT
//	assertions:
//	  - type: final_value
//	    value: "name:asc"
//
// A step is exactly one of set, set_field, reset, toggle or apply.
//
// # Assertion Types
//
//   - final_value: the encoded value after the last step
//   - trace_contains: some step produced the encoded value
//   - trace_order: the encoded values were produced in this order
//   - rerun_count: an observer re-ran exactly count times in total
//
// # Deterministic Testing
//
// Scenarios run with testutil.DeterministicClock and a fixed computation
// ID, so traces are byte-identical across runs and can be compared with
// golden files (RunWithGolden).
package harness
