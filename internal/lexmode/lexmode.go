// Package lexmode implements the "let" mode: a line-oriented lexer for a small
// expression language that both classifies characters and assigns faces.
//
//	let rec fact n = if n <= 1 then 1 else n * fact (n - 1)
//	  in print "fact: \"" (fact 5)   # trailing comment
//
// Lexing never crosses a newline, so fontifying any set of whole lines gives
// the same faces as fontifying the whole buffer.
package lexmode

import (
	"github.com/roach88/fontverify/internal/host"
)

// Faces assigned by the mode.
const (
	FaceKeyword  host.Face = "keyword"
	FaceNumber   host.Face = "number"
	FaceConstant host.Face = "constant"
	FaceString   host.Face = "string"
	FaceComment  host.Face = "comment"
	FaceOperator host.Face = "operator"
	FaceBinding  host.Face = "variable-name"
)

// Name is the mode name used in scenarios and on the command line.
const Name = "let"

var keywords = map[string]bool{
	"let": true, "rec": true, "in": true, "and": true,
	"fun": true, "if": true, "then": true, "else": true,
	"match": true, "with": true,
}

// binders introduce a name that gets FaceBinding.
var binders = map[string]bool{"let": true, "rec": true, "fun": true, "and": true}

var constants = map[string]bool{"true": true, "false": true, "unit": true}

// Mode is the "let" mode. It is stateless.
type Mode struct{}

var _ host.Mode = Mode{}

func New() Mode { return Mode{} }

func (Mode) Name() string { return Name }

func (Mode) Classify(text []rune) []host.Class {
	out := make([]host.Class, len(text))
	for lb := 0; lb < len(text); {
		le := lineEnd(text, lb)
		for _, tok := range lexLine(text, lb, le) {
			for i := tok.beg; i < tok.end; i++ {
				out[i] = tok.class
			}
		}
		lb = le
	}
	return out
}

// Fontify lexes every line that starts within [beg, end).
func (Mode) Fontify(text []rune, beg, end int) ([]host.FaceSpan, error) {
	var spans []host.FaceSpan
	for lb := beg; lb < end; {
		le := lineEnd(text, lb)
		for _, tok := range lexLine(text, lb, le) {
			if tok.face == host.NoFace {
				continue
			}
			if n := len(spans); n > 0 && spans[n-1].End == tok.beg && spans[n-1].Face == tok.face {
				spans[n-1].End = tok.end
				continue
			}
			spans = append(spans, host.FaceSpan{Beg: tok.beg, End: tok.end, Face: tok.face})
		}
		lb = le
	}
	return spans, nil
}

// lineEnd returns the offset just past the newline ending the line that
// starts at lb, or len(text).
func lineEnd(text []rune, lb int) int {
	for i := lb; i < len(text); i++ {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return len(text)
}
