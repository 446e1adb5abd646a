package verify

import (
	"slices"
	"strings"

	"github.com/roach88/fontverify/internal/host"
)

// ClassMatcher is an expected set of classes, or the wildcard AnyClass.
type ClassMatcher struct {
	any bool
	set []host.Class
}

// AnyClass skips the classification check.
var AnyClass = ClassMatcher{any: true}

// Classes returns a matcher for exactly the given set. Order is irrelevant and
// duplicates collapse.
func Classes(cs ...host.Class) ClassMatcher {
	return ClassMatcher{set: sortedClasses(cs)}
}

// IsAny reports whether m is the wildcard.
func (m ClassMatcher) IsAny() bool { return m.any }

// Set returns the sorted expected set.
func (m ClassMatcher) Set() []host.Class { return m.set }

func (m ClassMatcher) String() string {
	if m.any {
		return "*"
	}
	return "{" + strings.Join(classStrings(m.set), " ") + "}"
}

// FaceMatcher is an expected single face, or the wildcard AnyFace.
type FaceMatcher struct {
	any  bool
	face host.Face
}

// AnyFace skips the display attribute check.
var AnyFace = FaceMatcher{any: true}

// FaceIs expects every character to carry exactly f. Use host.NoFace to
// expect unstyled text.
func FaceIs(f host.Face) FaceMatcher {
	return FaceMatcher{face: f}
}

func (m FaceMatcher) IsAny() bool { return m.any }

func (m FaceMatcher) Face() host.Face { return m.face }

func (m FaceMatcher) String() string {
	if m.any {
		return "*"
	}
	return m.face.String()
}

func sortedClasses(cs []host.Class) []host.Class {
	out := slices.Clone(cs)
	slices.Sort(out)
	return slices.Compact(out)
}

func sortedFaces(fs []host.Face) []host.Face {
	out := slices.Clone(fs)
	slices.Sort(out)
	return slices.Compact(out)
}

func classStrings(cs []host.Class) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

func faceStrings(fs []host.Face) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}
