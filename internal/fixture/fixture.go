// Package fixture manages named, single-use test buffers and loads content
// into them.
//
// A fixture is created fresh by Acquire and is deliberately left alive when
// the test that owns it finishes, so a failing test can still be inspected.
// The next Acquire of the same name destroys it before handing out a new one.
package fixture

import (
	"fmt"

	"github.com/roach88/fontverify/internal/host"
)

// State is the lifecycle state of a fixture.
type State int

const (
	Absent State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Fixture is an ephemeral named buffer owned by the running test.
type Fixture struct {
	Name   string
	Buffer host.Buffer
	state  State
}

// State reports whether the fixture is still the live instance of its name.
func (f *Fixture) State() State { return f.state }

// Manager hands out fixtures and guarantees at most one live fixture per name.
// It is not safe for concurrent use; tests sharing a fixture name must not run
// in parallel.
type Manager struct {
	host     host.Host
	fixtures map[string]*Fixture
	current  *Fixture
}

func NewManager(h host.Host) *Manager {
	return &Manager{
		host:     h,
		fixtures: make(map[string]*Fixture),
	}
}

// Acquire destroys any existing fixture or host buffer called name, creates an
// empty one in mode, and makes it current.
func (m *Manager) Acquire(name string, mode host.Mode) (*Fixture, error) {
	if old, ok := m.fixtures[name]; ok {
		old.state = Absent
		delete(m.fixtures, name)
		if m.current == old {
			m.current = nil
		}
	}
	m.host.Kill(name)

	buf := m.host.Create(name)
	if err := buf.SetMode(mode); err != nil {
		return nil, fmt.Errorf("acquire fixture %q: %w", name, err)
	}

	f := &Fixture{Name: name, Buffer: buf, state: Active}
	m.fixtures[name] = f
	m.current = f
	return f, nil
}

// Current returns the most recently acquired live fixture, or nil.
func (m *Manager) Current() *Fixture { return m.current }

// Lookup returns the live fixture called name.
func (m *Manager) Lookup(name string) (*Fixture, bool) {
	f, ok := m.fixtures[name]
	return f, ok
}
