package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/fontverify/internal/testutil"
)

// createTestStore opens a store in a temp dir with a fixed run ID.
func createTestStore(t *testing.T, runID string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithRunIDs(testutil.NewFixedRunID(runID)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sequenceIDs hands out the given IDs in order.
type sequenceIDs struct {
	ids []string
}

func (g *sequenceIDs) Generate() string {
	id := g.ids[0]
	g.ids = g.ids[1:]
	return id
}
