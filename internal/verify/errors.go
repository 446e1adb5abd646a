package verify

import (
	"fmt"
	"strings"

	"github.com/roach88/fontverify/internal/host"
)

// Assertion kinds.
const (
	KindClasses = "classes"
	KindFace    = "face"
)

// AssertionError reports a set mismatch over a range. Text is carried on both
// sides so that two ranges failing the same way stay distinguishable.
type AssertionError struct {
	Kind     string
	Text     string
	Range    host.Range
	Expected []string
	Actual   []string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s at [%d, %d)\n", e.Kind, e.Range.Beg, e.Range.End)
	fmt.Fprintf(&buf, "  Expected: (%q [%s])\n", e.Text, strings.Join(e.Expected, " "))
	fmt.Fprintf(&buf, "  Actual:   (%q [%s])", e.Text, strings.Join(e.Actual, " "))
	return buf.String()
}

// NotFoundError reports that a literal does not occur after the search start.
type NotFoundError struct {
	Literal string
	From    int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("search failed: %q not found after offset %d", e.Literal, e.From)
}

// RangeError reports a range that is reversed or outside the buffer.
type RangeError struct {
	Beg, End int
	Len      int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d) for buffer of length %d", e.Beg, e.End, e.Len)
}
