package store

// Run is one invocation of the checker.
type Run struct {
	ID         string
	StartedSeq int64
	Source     string // the scenario file or directory that was checked
}

// Check is one recorded expectation or assertion.
type Check struct {
	RunID    string
	Seq      int64
	Scenario string
	Kind     string
	Text     string
	Beg      int
	End      int
	Classes  []string
	Faces    []string
	Pass     bool
	Message  string
}

// ScenarioSummary counts the checks of one scenario in a run.
type ScenarioSummary struct {
	Scenario string
	Passed   int
	Failed   int
}
