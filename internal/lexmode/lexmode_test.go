package lexmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fontverify/internal/host"
)

func classesOf(s string) []host.Class {
	return New().Classify([]rune(s))
}

func facesOf(t *testing.T, s string) []host.Face {
	t.Helper()
	text := []rune(s)
	spans, err := New().Fontify(text, 0, len(text))
	require.NoError(t, err)
	out := make([]host.Face, len(text))
	for _, sp := range spans {
		for i := sp.Beg; i < sp.End; i++ {
			out[i] = sp.Face
		}
	}
	return out
}

func TestClassifyLetBinding(t *testing.T) {
	got := classesOf("let x = 1")
	want := []host.Class{
		host.ClassKeyword, host.ClassKeyword, host.ClassKeyword,
		host.ClassWhitespace,
		host.ClassWord,
		host.ClassWhitespace,
		host.ClassOperator,
		host.ClassWhitespace,
		host.ClassConstant,
	}
	assert.Equal(t, want, got)
}

func TestFontifyLetBinding(t *testing.T) {
	got := facesOf(t, "let x = 1")
	want := []host.Face{
		FaceKeyword, FaceKeyword, FaceKeyword,
		host.NoFace,
		FaceBinding,
		host.NoFace, host.NoFace, host.NoFace,
		FaceNumber,
	}
	assert.Equal(t, want, got)
}

func TestStringClasses(t *testing.T) {
	got := classesOf(`"a\"b"`)
	want := []host.Class{
		host.ClassQuote,
		host.ClassString,
		host.ClassEscape,
		host.ClassString,
		host.ClassString,
		host.ClassQuote,
	}
	assert.Equal(t, want, got)

	for i, f := range facesOf(t, `"a\"b"`) {
		assert.Equal(t, FaceString, f, "offset %d", i)
	}
}

func TestUnterminatedStringStopsAtNewline(t *testing.T) {
	got := classesOf("\"ab\nx")
	assert.Equal(t, host.ClassWhitespace, got[3])
	assert.Equal(t, host.ClassWord, got[4])
}

func TestComment(t *testing.T) {
	text := "x # hi\ny"
	got := classesOf(text)
	for i := 2; i < 6; i++ {
		assert.Equal(t, host.ClassComment, got[i], "offset %d", i)
	}
	assert.Equal(t, host.ClassWhitespace, got[6])
	assert.Equal(t, host.ClassWord, got[7])

	faces := facesOf(t, text)
	assert.Equal(t, FaceComment, faces[2])
	assert.Equal(t, host.NoFace, faces[6])
}

func TestComparisonAndOperators(t *testing.T) {
	got := classesOf("a <= b -> c")
	assert.Equal(t, host.ClassComparison, got[2])
	assert.Equal(t, host.ClassComparison, got[3])
	assert.Equal(t, host.ClassOperator, got[7])
	assert.Equal(t, host.ClassOperator, got[8])
}

func TestParens(t *testing.T) {
	got := classesOf("(f [x])")
	assert.Equal(t, host.ClassOpen, got[0])
	assert.Equal(t, host.ClassOpen, got[3])
	assert.Equal(t, host.ClassClose, got[5])
	assert.Equal(t, host.ClassClose, got[6])
}

func TestFloatAndConstants(t *testing.T) {
	got := classesOf("3.14 true")
	for i := 0; i < 4; i++ {
		assert.Equal(t, host.ClassConstant, got[i])
	}
	faces := facesOf(t, "3.14 true")
	assert.Equal(t, FaceNumber, faces[3])
	assert.Equal(t, FaceConstant, faces[5])
}

func TestBinderOnlyAppliesToNextName(t *testing.T) {
	faces := facesOf(t, "fun a b")
	assert.Equal(t, FaceBinding, faces[4])
	assert.Equal(t, host.NoFace, faces[6])
}

func TestFontifyMergesAdjacentSpans(t *testing.T) {
	text := []rune(`"ab"`)
	spans, err := New().Fontify(text, 0, len(text))
	require.NoError(t, err)
	assert.Equal(t, []host.FaceSpan{{Beg: 0, End: 4, Face: FaceString}}, spans)
}

func TestFontifyLinesMatchesWhole(t *testing.T) {
	text := []rune("let x = 1\n  in \"s\" # c\n")
	whole, err := New().Fontify(text, 0, len(text))
	require.NoError(t, err)

	first, err := New().Fontify(text, 0, 10)
	require.NoError(t, err)
	second, err := New().Fontify(text, 10, len(text))
	require.NoError(t, err)

	assert.Equal(t, whole, append(first, second...))
}
