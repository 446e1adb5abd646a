package verify

import (
	"fmt"
	"strings"

	"github.com/roach88/fontverify/internal/fixture"
	"github.com/roach88/fontverify/internal/host"
)

// Expectation is one entry of a batch check: the literal to search for and
// what its span must carry.
type Expectation struct {
	Text    string
	Classes ClassMatcher
	Face    FaceMatcher
}

// Expect builds an Expectation.
func Expect(text string, classes ClassMatcher, face FaceMatcher) Expectation {
	return Expectation{Text: text, Classes: classes, Face: face}
}

func (e Expectation) String() string {
	return fmt.Sprintf("%q classes=%s face=%s", e.Text, e.Classes, e.Face)
}

// CheckAll loads c into f once, then verifies each expectation against the
// next occurrence of its text. Expectations must be listed in the order their
// text appears; the first failure is returned.
func CheckAll(f *fixture.Fixture, c fixture.Content, exps []Expectation) error {
	if err := fixture.Load(f, c); err != nil {
		return err
	}
	for i, e := range exps {
		if err := VerifyBySearch(f.Buffer, e.Text, e.Classes, e.Face); err != nil {
			return fmt.Errorf("expectation %d (%s): %w", i, e, err)
		}
	}
	return nil
}

// CharAttribute is the class and face of one character.
type CharAttribute struct {
	Offset int
	Char   rune
	Class  host.Class
	Face   host.Face
}

// AttributeMap reads the class and face of every character in buf.
func AttributeMap(buf host.Buffer) []CharAttribute {
	n := buf.Len()
	out := make([]CharAttribute, n)
	for i, r := range []rune(buf.Substring(0, n)) {
		out[i] = CharAttribute{Offset: i, Char: r, Class: buf.ClassAt(i), Face: buf.FaceAt(i)}
	}
	return out
}

// Divergence is an offset where line-by-line and block loading disagree.
type Divergence struct {
	Offset int
	Lines  CharAttribute
	Block  CharAttribute
}

func (d Divergence) String() string {
	return fmt.Sprintf("offset %d %q: lines=(%s, %s) block=(%s, %s)",
		d.Offset, d.Lines.Char, d.Lines.Class, d.Lines.Face, d.Block.Class, d.Block.Face)
}

// Fixture names used by Equivalence.
const (
	linesFixture = "*equivalence-lines*"
	blockFixture = "*equivalence-block*"
)

// Equivalence loads lines once incrementally and once as a single block
// joined with newlines, and returns every offset of their common prefix whose
// class or face differs. The lines path also ends with a newline the block
// lacks; that final position is outside the common prefix.
func Equivalence(m *fixture.Manager, mode host.Mode, lines []string) ([]Divergence, error) {
	lf, err := m.Acquire(linesFixture, mode)
	if err != nil {
		return nil, err
	}
	if err := fixture.Load(lf, fixture.Lines(lines...)); err != nil {
		return nil, err
	}
	bf, err := m.Acquire(blockFixture, mode)
	if err != nil {
		return nil, err
	}
	if err := fixture.Load(bf, fixture.Text(strings.Join(lines, "\n"))); err != nil {
		return nil, err
	}

	la, ba := AttributeMap(lf.Buffer), AttributeMap(bf.Buffer)
	n := min(len(la), len(ba))
	var out []Divergence
	for i := 0; i < n; i++ {
		if la[i].Class != ba[i].Class || la[i].Face != ba[i].Face {
			out = append(out, Divergence{Offset: i, Lines: la[i], Block: ba[i]})
		}
	}
	return out, nil
}
