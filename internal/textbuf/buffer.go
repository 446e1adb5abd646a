// Package textbuf is an in-memory implementation of host.Buffer and host.Host.
//
// Each buffer stores its text as runes with a parallel face slice. Lexical
// classes are derived from the active mode and recomputed lazily after edits.
package textbuf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/fontverify/internal/host"
)

// Buffer is a named text container. The zero value is not usable; create
// buffers with Host.Create or New.
type Buffer struct {
	name    string
	text    []rune
	faces   []host.Face
	classes []host.Class // nil when stale
	point   int
	mode    host.Mode
	killed  bool
}

var _ host.Buffer = (*Buffer)(nil)

// New returns an empty buffer in Fundamental mode.
func New(name string) *Buffer {
	return &Buffer{name: name, mode: Fundamental{}}
}

func (b *Buffer) Name() string { return b.name }

// Mode returns the active mode.
func (b *Buffer) Mode() host.Mode { return b.mode }

// Killed reports whether the owning host has killed this buffer.
func (b *Buffer) Killed() bool { return b.killed }

// SetMode switches modes. Faces computed by the previous mode are dropped.
func (b *Buffer) SetMode(mode host.Mode) error {
	if mode == nil {
		return fmt.Errorf("buffer %q: nil mode", b.name)
	}
	b.mode = mode
	for i := range b.faces {
		b.faces[i] = host.NoFace
	}
	b.classes = nil
	return nil
}

// Insert inserts text at point. Inserted runes carry no face.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	ins := []rune(text)
	n := len(ins)

	text2 := make([]rune, 0, len(b.text)+n)
	text2 = append(text2, b.text[:b.point]...)
	text2 = append(text2, ins...)
	text2 = append(text2, b.text[b.point:]...)
	b.text = text2

	faces := make([]host.Face, 0, len(b.faces)+n)
	faces = append(faces, b.faces[:b.point]...)
	faces = append(faces, make([]host.Face, n)...)
	faces = append(faces, b.faces[b.point:]...)
	b.faces = faces

	b.point += n
	b.classes = nil
}

func (b *Buffer) Point() int { return b.point }

// SetPoint moves point, clamped to [0, Len()].
func (b *Buffer) SetPoint(pos int) {
	b.point = clamp(pos, 0, len(b.text))
}

func (b *Buffer) Len() int { return len(b.text) }

// String returns the whole buffer text.
func (b *Buffer) String() string { return string(b.text) }

func (b *Buffer) SearchForward(literal string) (host.Range, bool) {
	if literal == "" {
		return host.Range{Beg: b.point, End: b.point}, true
	}
	rest := string(b.text[b.point:])
	idx := strings.Index(rest, literal)
	if idx < 0 {
		return host.Range{}, false
	}
	beg := b.point + utf8.RuneCountInString(rest[:idx])
	end := beg + utf8.RuneCountInString(literal)
	b.point = end
	return host.Range{Beg: beg, End: end}, true
}

// Substring returns the text in [beg, end), clamped to the buffer.
func (b *Buffer) Substring(beg, end int) string {
	beg = clamp(beg, 0, len(b.text))
	end = clamp(end, beg, len(b.text))
	return string(b.text[beg:end])
}

// ClassAt returns the classification of the rune at pos, or "" outside the
// buffer.
func (b *Buffer) ClassAt(pos int) host.Class {
	if pos < 0 || pos >= len(b.text) {
		return ""
	}
	if b.classes == nil {
		b.classes = b.mode.Classify(b.text)
	}
	if pos >= len(b.classes) {
		return ""
	}
	return b.classes[pos]
}

func (b *Buffer) FaceAt(pos int) host.Face {
	if pos < 0 || pos >= len(b.faces) {
		return host.NoFace
	}
	return b.faces[pos]
}

// Fontify recomputes faces over [beg, end). The region is widened to whole
// lines before the mode runs, so a partial token at either edge is never
// analyzed in isolation.
func (b *Buffer) Fontify(beg, end int) error {
	if beg < 0 || end > len(b.text) || beg > end {
		return fmt.Errorf("buffer %q: fontify range [%d, %d) outside [0, %d)", b.name, beg, end, len(b.text))
	}
	if beg == end {
		return nil
	}
	lb, le := b.lineStart(beg), b.lineEnd(end)

	spans, err := b.mode.Fontify(b.text, lb, le)
	if err != nil {
		return fmt.Errorf("buffer %q: %s fontify: %w", b.name, b.mode.Name(), err)
	}
	for i := lb; i < le; i++ {
		b.faces[i] = host.NoFace
	}
	for _, sp := range spans {
		s := clamp(sp.Beg, lb, le)
		e := clamp(sp.End, s, le)
		for i := s; i < e; i++ {
			b.faces[i] = sp.Face
		}
	}
	return nil
}

func (b *Buffer) FontifyAll() error {
	return b.Fontify(0, len(b.text))
}

// lineStart returns the offset of the first rune of the line containing pos.
func (b *Buffer) lineStart(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset just past the newline terminating the line that
// contains pos-1, or Len() for an unterminated last line.
func (b *Buffer) lineEnd(pos int) int {
	if pos > 0 && b.text[pos-1] == '\n' {
		return pos
	}
	for pos < len(b.text) {
		pos++
		if b.text[pos-1] == '\n' {
			break
		}
	}
	return pos
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
