// Package harness runs attribute scenarios: YAML files that load text into a
// fixture, fontify it with a mode and check the classes and faces of what
// comes out.
//
// # Scenario Format
//
//	name: let_binding
//	description: keywords and numbers in a let binding
//	mode: let                 # optional, defaults to "let"
//	lines: ["let x = 1"]      # or content: "let x = 1"
//	equivalence: true         # lines only: also compare with block loading
//	expect:
//	  - text: let
//	    classes: [keyword]
//	    face: keyword
//	  - text: "1"
//	    classes: [constant]
//	    face: number          # "none" means no face; omit for any
//	assertions:
//	  - type: range
//	    beg: 3
//	    end: 4
//	    classes: [whitespace]
//	    face: none
//	  - type: face_at
//	    offset: 4
//	    face: variable-name
//	  - type: check_count
//	    count: 4
//
// Scenarios are decoded strictly and then validated against an embedded CUE
// schema, so misspelled fields and unknown classes are rejected before
// anything runs.
//
// # Evaluation
//
// Expectations are searched for in order, each search starting where the
// previous match ended. A class or face mismatch is recorded and evaluation
// goes on; a literal that is not found ends the expectations. Every
// expectation and assertion yields a CheckEvent stamped by a logical clock,
// so results are reproducible.
//
// # Golden Files
//
// RunWithGolden and AssertGolden compare the per-character attribute map
// with testdata/golden/<name>.golden, written as canonical JSON lines.
package harness
