package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqClock_StartsAtZero(t *testing.T) {
	assert.Equal(t, int64(0), NewSeqClock().Current())
}

func TestSeqClock_NextIncrements(t *testing.T) {
	clock := NewSeqClock()
	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(2), clock.Current())
}

func TestSeqClock_Reset(t *testing.T) {
	clock := NewSeqClock()
	clock.Next()
	clock.Next()
	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestSeqClock_ThreadSafe(t *testing.T) {
	clock := NewSeqClock()
	const goroutines, calls = 50, 100

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int64]bool)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				v := clock.Next()
				mu.Lock()
				assert.False(t, seen[v], "duplicate value %d", v)
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, goroutines*calls)
}

func TestFixedRunID(t *testing.T) {
	g := NewFixedRunID("run-1")
	assert.Equal(t, "run-1", g.Generate())
	assert.Equal(t, "run-1", g.Generate())
	assert.Equal(t, "test-run-default", NewFixedRunID("").Generate())
}
