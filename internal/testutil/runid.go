package testutil

// FixedRunID returns the same run ID every time, so results written by a
// test can be looked up without threading the generated ID around.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a generator for id. An empty id becomes
// "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate implements store.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
