// Package verify checks the lexical classes and faces a mode assigned to text.
//
// Checks compare sets: every character in a range contributes its class and
// its face, and the accumulated sets must equal the expected ones exactly. A
// range that is right everywhere except its last character therefore fails,
// which sampling a single position would miss.
package verify

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/fontverify/internal/host"
)

// Observation holds the distinct classes and faces found over a range,
// each sorted.
type Observation struct {
	Text    string
	Range   host.Range
	Classes []host.Class
	Faces   []host.Face
}

// Observe scans [beg, end) of buf. The range must be valid.
func Observe(buf host.Buffer, beg, end int) Observation {
	classes := make([]host.Class, 0, 4)
	faces := make([]host.Face, 0, 2)
	for i := beg; i < end; i++ {
		if c := buf.ClassAt(i); !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
		if f := buf.FaceAt(i); !slices.Contains(faces, f) {
			faces = append(faces, f)
		}
	}
	return Observation{
		Text:    buf.Substring(beg, end),
		Range:   host.Range{Beg: beg, End: end},
		Classes: sortedClasses(classes),
		Faces:   sortedFaces(faces),
	}
}

// classRecord pairs a span's text with a sorted class set.
type classRecord struct {
	Text    string
	Classes []host.Class
}

func (r classRecord) equal(o classRecord) bool {
	return r.Text == o.Text && slices.Equal(r.Classes, o.Classes)
}

// Verify checks that every character in [beg, end) of buf has exactly the
// expected classes and face. An empty range always passes.
func Verify(buf host.Buffer, beg, end int, classes ClassMatcher, face FaceMatcher) error {
	if beg < 0 || end > buf.Len() || beg > end {
		return &RangeError{Beg: beg, End: end, Len: buf.Len()}
	}
	if beg == end {
		return nil
	}
	return check(Observe(buf, beg, end), classes, face)
}

func check(obs Observation, classes ClassMatcher, face FaceMatcher) error {
	if !classes.IsAny() {
		want := classRecord{Text: obs.Text, Classes: classes.Set()}
		got := classRecord{Text: obs.Text, Classes: obs.Classes}
		if !got.equal(want) {
			return &AssertionError{
				Kind:     KindClasses,
				Text:     obs.Text,
				Range:    obs.Range,
				Expected: classStrings(want.Classes),
				Actual:   classStrings(got.Classes),
			}
		}
	}
	if !face.IsAny() {
		if len(obs.Faces) != 1 || obs.Faces[0] != face.Face() {
			return &AssertionError{
				Kind:     KindFace,
				Text:     obs.Text,
				Range:    obs.Range,
				Expected: []string{face.Face().String()},
				Actual:   faceStrings(obs.Faces),
			}
		}
	}
	return nil
}

// VerifyBySearch finds the first occurrence of literal at or after point,
// moves point past it and verifies the matched span.
func VerifyBySearch(buf host.Buffer, literal string, classes ClassMatcher, face FaceMatcher) error {
	from := buf.Point()
	r, ok := buf.SearchForward(literal)
	if !ok {
		return &NotFoundError{Literal: literal, From: from}
	}
	return Verify(buf, r.Beg, r.End, classes, face)
}

// Check is Verify for use inside a test: a failure stops the test with the
// full diagnostic.
func Check(t testing.TB, buf host.Buffer, beg, end int, classes ClassMatcher, face FaceMatcher) {
	t.Helper()
	require.NoError(t, Verify(buf, beg, end, classes, face))
}

// CheckSearch is VerifyBySearch for use inside a test.
func CheckSearch(t testing.TB, buf host.Buffer, literal string, classes ClassMatcher, face FaceMatcher) {
	t.Helper()
	require.NoError(t, VerifyBySearch(buf, literal, classes, face))
}
