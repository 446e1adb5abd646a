package fixture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fontverify/internal/host"
	"github.com/roach88/fontverify/internal/lexmode"
	"github.com/roach88/fontverify/internal/textbuf"
)

// failingMode classifies like lexmode but refuses to fontify.
type failingMode struct {
	lexmode.Mode
	err error
}

func (m failingMode) Fontify(text []rune, beg, end int) ([]host.FaceSpan, error) {
	return nil, m.err
}

// countingMode records each region it is asked to fontify.
type countingMode struct {
	lexmode.Mode
	regions *[][2]int
}

func (m countingMode) Fontify(text []rune, beg, end int) ([]host.FaceSpan, error) {
	*m.regions = append(*m.regions, [2]int{beg, end})
	return m.Mode.Fontify(text, beg, end)
}

func TestAcquireTwiceLeavesNoResidue(t *testing.T) {
	m := NewManager(textbuf.NewHost())

	first, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)
	require.NoError(t, Load(first, Text("let a = 1")))

	second, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)
	require.NoError(t, Load(second, Text("2")))

	assert.Equal(t, "2", second.Buffer.Substring(0, second.Buffer.Len()))
	assert.Equal(t, Absent, first.State())
	assert.Equal(t, Active, second.State())
	assert.Same(t, second, m.Current())
}

func TestAcquireKillsForeignBuffer(t *testing.T) {
	h := textbuf.NewHost()
	stray := h.Create("T")
	stray.Insert("left over")

	m := NewManager(h)
	f, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)
	assert.Equal(t, 0, f.Buffer.Len())
	assert.True(t, stray.(*textbuf.Buffer).Killed())
}

func TestFixtureSurvivesUntilNextAcquire(t *testing.T) {
	m := NewManager(textbuf.NewHost())
	f, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)
	require.NoError(t, Load(f, Text("kept")))

	got, ok := m.Lookup("T")
	require.True(t, ok)
	assert.Equal(t, "kept", got.Buffer.Substring(0, 4))
}

func TestAcquireDifferentNamesCoexist(t *testing.T) {
	m := NewManager(textbuf.NewHost())
	a, err := m.Acquire("a", lexmode.New())
	require.NoError(t, err)
	b, err := m.Acquire("b", lexmode.New())
	require.NoError(t, err)

	assert.Equal(t, Active, a.State())
	assert.Equal(t, Active, b.State())
	assert.Same(t, b, m.Current())
}

func TestAcquireSetsMode(t *testing.T) {
	m := NewManager(textbuf.NewHost())
	f, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)
	assert.Equal(t, lexmode.Name, f.Buffer.(*textbuf.Buffer).Mode().Name())
}

func TestLoadBlockResetsPoint(t *testing.T) {
	m := NewManager(textbuf.NewHost())
	f, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)

	require.NoError(t, Load(f, Text("let x = 1")))
	assert.Equal(t, 0, f.Buffer.Point())
	assert.Equal(t, lexmode.FaceKeyword, f.Buffer.FaceAt(0))
	assert.Equal(t, lexmode.FaceNumber, f.Buffer.FaceAt(8))
}

func TestLoadLinesAppendsTerminators(t *testing.T) {
	m := NewManager(textbuf.NewHost())
	f, err := m.Acquire("T", lexmode.New())
	require.NoError(t, err)

	require.NoError(t, Load(f, Lines("let x = 1", "  in x")))
	assert.Equal(t, "let x = 1\n  in x\n", f.Buffer.Substring(0, f.Buffer.Len()))
	assert.Equal(t, 0, f.Buffer.Point())
	assert.Equal(t, lexmode.FaceKeyword, f.Buffer.FaceAt(12))
}

func TestLoadLinesFontifiesIncrementally(t *testing.T) {
	var regions [][2]int
	m := NewManager(textbuf.NewHost())
	f, err := m.Acquire("T", countingMode{regions: &regions})
	require.NoError(t, err)

	require.NoError(t, Load(f, Lines("ab", "cde")))
	assert.Equal(t, [][2]int{{0, 3}, {3, 7}}, regions)
}

func TestLoadBlockFontifiesOnce(t *testing.T) {
	var regions [][2]int
	m := NewManager(textbuf.NewHost())
	f, err := m.Acquire("T", countingMode{regions: &regions})
	require.NoError(t, err)

	require.NoError(t, Load(f, Text("ab\ncde")))
	assert.Equal(t, [][2]int{{0, 6}}, regions)
}

func TestLoadPropagatesFontifyError(t *testing.T) {
	boom := errors.New("fontify exploded")
	m := NewManager(textbuf.NewHost())

	f, err := m.Acquire("T", failingMode{err: boom})
	require.NoError(t, err)
	err = Load(f, Text("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	f, err = m.Acquire("T", failingMode{err: boom})
	require.NoError(t, err)
	err = Load(f, Lines("x", "y"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "line 1")
	assert.Equal(t, "x\n", f.Buffer.Substring(0, f.Buffer.Len()), "loading stops at the failing line")
}

func TestContentString(t *testing.T) {
	assert.Equal(t, "a\nb\n", Lines("a", "b").String())
	assert.Equal(t, "a\nb", Text("a\nb").String())
	assert.True(t, Lines().IsLines())
	assert.False(t, Text("").IsLines())
}
