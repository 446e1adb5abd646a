// Package host defines the operations fontverify consumes from a text
// processing host: buffers with per-character classification and display
// attributes, content-analysis modes, and fontification.
//
// Offsets are 0-based rune indices. Ranges are half-open [Beg, End).
package host

// Class is a lexical classification tag for a single character.
type Class string

// The fixed classification alphabet.
const (
	ClassWhitespace  Class = "whitespace"
	ClassWord        Class = "word"
	ClassKeyword     Class = "keyword"
	ClassConstant    Class = "constant"
	ClassString      Class = "string"
	ClassQuote       Class = "quote"
	ClassEscape      Class = "escape"
	ClassComment     Class = "comment"
	ClassOperator    Class = "operator"
	ClassComparison  Class = "comparison"
	ClassOpen        Class = "open"
	ClassClose       Class = "close"
	ClassPunctuation Class = "punctuation"
)

var knownClasses = map[Class]bool{
	ClassWhitespace: true, ClassWord: true, ClassKeyword: true, ClassConstant: true,
	ClassString: true, ClassQuote: true, ClassEscape: true, ClassComment: true,
	ClassOperator: true, ClassComparison: true, ClassOpen: true, ClassClose: true,
	ClassPunctuation: true,
}

// Valid reports whether c belongs to the classification alphabet.
func (c Class) Valid() bool { return knownClasses[c] }

// Face is a display attribute value. NoFace means no attribute is set.
type Face string

const NoFace Face = ""

// String returns "none" for NoFace so diagnostics never print an empty value.
func (f Face) String() string {
	if f == NoFace {
		return "none"
	}
	return string(f)
}

// ParseFace is the inverse of Face.String: "none" yields NoFace.
func ParseFace(s string) Face {
	if s == "none" {
		return NoFace
	}
	return Face(s)
}

// Range is a half-open span of rune offsets.
type Range struct {
	Beg int
	End int
}

// Len returns the number of runes covered by r.
func (r Range) Len() int {
	return r.End - r.Beg
}

// FaceSpan assigns Face to the runes in [Beg, End).
type FaceSpan struct {
	Beg  int
	End  int
	Face Face
}

// Mode is a content-analysis mode: a classifier plus a fontifier.
type Mode interface {
	Name() string

	// Classify returns one Class per rune of text.
	Classify(text []rune) []Class

	// Fontify computes faces for [beg, end) of text. Returned spans must lie
	// within [beg, end); runes not covered have NoFace.
	Fontify(text []rune, beg, end int) ([]FaceSpan, error)
}

// Buffer is a named text container with a movable point.
type Buffer interface {
	Name() string

	// SetMode switches the buffer into mode and clears existing faces.
	SetMode(mode Mode) error

	// Insert inserts text at point and leaves point after it.
	Insert(text string)

	Point() int
	SetPoint(pos int)
	Len() int

	// SearchForward finds the first case-sensitive occurrence of literal at or
	// after point. On success point moves to the end of the match.
	SearchForward(literal string) (Range, bool)

	Substring(beg, end int) string

	ClassAt(pos int) Class
	FaceAt(pos int) Face

	// Fontify recomputes faces over [beg, end); FontifyAll over the whole buffer.
	Fontify(beg, end int) error
	FontifyAll() error
}

// Host owns the set of live buffers, at most one per name.
type Host interface {
	Buffer(name string) (Buffer, bool)
	Create(name string) Buffer
	Kill(name string) bool
}
