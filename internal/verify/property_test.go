package verify

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/roach88/fontverify/internal/host"
)

// stubBuffer is a host.Buffer with explicitly assigned classes and faces.
type stubBuffer struct {
	text    []rune
	classes []host.Class
	faces   []host.Face
	point   int
}

func uniformStub(n int, c host.Class, f host.Face) *stubBuffer {
	b := &stubBuffer{
		text:    []rune(strings.Repeat("x", n)),
		classes: make([]host.Class, n),
		faces:   make([]host.Face, n),
	}
	for i := 0; i < n; i++ {
		b.classes[i] = c
		b.faces[i] = f
	}
	return b
}

func (b *stubBuffer) Name() string { return "stub" }
func (b *stubBuffer) SetMode(host.Mode) error { return nil }
func (b *stubBuffer) Insert(string) {}
func (b *stubBuffer) Point() int { return b.point }
func (b *stubBuffer) SetPoint(pos int) { b.point = pos }
func (b *stubBuffer) Len() int { return len(b.text) }
func (b *stubBuffer) Fontify(int, int) error { return nil }
func (b *stubBuffer) FontifyAll() error { return nil }
func (b *stubBuffer) ClassAt(pos int) host.Class { return b.classes[pos] }
func (b *stubBuffer) FaceAt(pos int) host.Face { return b.faces[pos] }

func (b *stubBuffer) Substring(beg, end int) string {
	return string(b.text[beg:end])
}

func (b *stubBuffer) SearchForward(literal string) (host.Range, bool) {
	return host.Range{}, false
}

var (
	genClass = rapid.SampledFrom([]host.Class{
		host.ClassWhitespace, host.ClassWord, host.ClassKeyword,
		host.ClassConstant, host.ClassString, host.ClassOperator,
	})
	genFace = rapid.SampledFrom([]host.Face{
		host.NoFace, "keyword", "number", "string",
	})
)

func drawRange(t *rapid.T, n int) (int, int) {
	beg := rapid.IntRange(0, n-1).Draw(t, "beg")
	end := rapid.IntRange(beg+1, n).Draw(t, "end")
	return beg, end
}

func TestPropertyUniformRangeVerifies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(rt, "n")
		c, f := genClass.Draw(rt, "class"), genFace.Draw(rt, "face")
		b := uniformStub(n, c, f)
		beg, end := drawRange(rt, n)

		if err := Verify(b, beg, end, Classes(c), FaceIs(f)); err != nil {
			rt.Fatalf("uniform range failed: %v", err)
		}
	})
}

func TestPropertySinglePerturbationFails(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(rt, "n")
		c, f := genClass.Draw(rt, "class"), genFace.Draw(rt, "face")
		b := uniformStub(n, c, f)
		beg, end := drawRange(rt, n)
		k := rapid.IntRange(beg, end-1).Draw(rt, "k")

		var aerr *AssertionError
		if rapid.Bool().Draw(rt, "perturbClass") {
			other := genClass.Filter(func(x host.Class) bool { return x != c }).Draw(rt, "other")
			b.classes[k] = other
			err := Verify(b, beg, end, Classes(c), FaceIs(f))
			if !errors.As(err, &aerr) || aerr.Kind != KindClasses {
				rt.Fatalf("expected classes failure at %d, got %v", k, err)
			}
		} else {
			other := genFace.Filter(func(x host.Face) bool { return x != f }).Draw(rt, "other")
			b.faces[k] = other
			err := Verify(b, beg, end, Classes(c), FaceIs(f))
			if !errors.As(err, &aerr) || aerr.Kind != KindFace {
				rt.Fatalf("expected face failure at %d, got %v", k, err)
			}
		}
	})
}

func TestPropertyEmptyRangeAlwaysPasses(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 32).Draw(rt, "n")
		b := uniformStub(n, genClass.Draw(rt, "class"), genFace.Draw(rt, "face"))
		pos := rapid.IntRange(0, n).Draw(rt, "pos")
		want := rapid.SliceOf(genClass).Draw(rt, "want")

		if err := Verify(b, pos, pos, Classes(want...), FaceIs(genFace.Draw(rt, "wantFace"))); err != nil {
			rt.Fatalf("empty range failed: %v", err)
		}
	})
}

func TestPropertyWildcardsNeverFail(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(rt, "n")
		b := uniformStub(n, host.ClassWord, host.NoFace)
		for i := 0; i < n; i++ {
			b.classes[i] = genClass.Draw(rt, "class")
			b.faces[i] = genFace.Draw(rt, "face")
		}
		beg, end := drawRange(rt, n)

		if err := Verify(b, beg, end, AnyClass, AnyFace); err != nil {
			rt.Fatalf("wildcards failed: %v", err)
		}
		// Each dimension alone is skipped when wildcarded.
		obs := Observe(b, beg, end)
		if err := Verify(b, beg, end, Classes(obs.Classes...), AnyFace); err != nil {
			rt.Fatalf("class-only check failed: %v", err)
		}
		if len(obs.Faces) == 1 {
			if err := Verify(b, beg, end, AnyClass, FaceIs(obs.Faces[0])); err != nil {
				rt.Fatalf("face-only check failed: %v", err)
			}
		}
	})
}
