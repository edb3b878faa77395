// Package harness runs binding-lesson scenarios and checks their traces.
//
// A scenario picks which lessons run their broken variant, optionally
// overrides the lesson inputs with a CUE file, and asserts on what the
// program printed and which faults it raised.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: broken-ownership
//	description: "Reading a moved vector aborts the program"
//	break: [ownership]
//	mode: run            # run (stop at first fault) | check (collect all)
//	params: params.cue   # optional, relative to the scenario
//	assertions:
//	  - type: output_equals
//	    lines: ["x= 3", "y= 16"]
//	  - type: fault_raised
//	    code: USE_AFTER_MOVE
//	    lesson: ownership
//	  - type: fault_count
//	    count: 1
//
// # Assertion Types
//
//   - output_equals: printed lines equal the expected lines exactly
//   - line_contains: some printed line contains the text
//   - fault_raised: a fault with the code was raised (optionally by one lesson)
//   - fault_count: exactly N faults were raised
//
// # Deterministic Traces
//
// Every line and fault gets a sequence number from testutil.SeqClock, reset
// per scenario, and Snapshot renders the trace as canonical JSON. The same
// scenario therefore always produces byte-identical golden files.
package harness
