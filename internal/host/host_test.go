package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassValid(t *testing.T) {
	assert.True(t, ClassKeyword.Valid())
	assert.True(t, ClassPunctuation.Valid())
	assert.False(t, Class("Keyword").Valid(), "classes are case-sensitive")
	assert.False(t, Class("").Valid())
}

func TestFaceStringRoundTrip(t *testing.T) {
	assert.Equal(t, "none", NoFace.String())
	assert.Equal(t, NoFace, ParseFace("none"))
	assert.Equal(t, Face("keyword"), ParseFace(Face("keyword").String()))
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 3, Range{Beg: 4, End: 7}.Len())
	assert.Equal(t, 0, Range{Beg: 2, End: 2}.Len())
}
