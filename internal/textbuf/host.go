package textbuf

import (
	"sort"
	"unicode"

	"github.com/roach88/fontverify/internal/host"
)

// Host keeps the live buffers by name.
type Host struct {
	buffers map[string]*Buffer
}

var _ host.Host = (*Host)(nil)

func NewHost() *Host {
	return &Host{buffers: make(map[string]*Buffer)}
}

func (h *Host) Buffer(name string) (host.Buffer, bool) {
	b, ok := h.buffers[name]
	if !ok {
		return nil, false
	}
	return b, true
}

// Create returns a new empty buffer. An existing buffer with the same name is
// killed first.
func (h *Host) Create(name string) host.Buffer {
	h.Kill(name)
	b := New(name)
	h.buffers[name] = b
	return b
}

// Kill removes the named buffer and reports whether it existed.
func (h *Host) Kill(name string) bool {
	b, ok := h.buffers[name]
	if !ok {
		return false
	}
	b.killed = true
	b.text = nil
	b.faces = nil
	b.classes = nil
	b.point = 0
	delete(h.buffers, name)
	return true
}

// Names returns the live buffer names in sorted order.
func (h *Host) Names() []string {
	names := make([]string, 0, len(h.buffers))
	for n := range h.buffers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Fundamental is the mode new buffers start in: Unicode-category
// classification and no faces.
type Fundamental struct{}

func (Fundamental) Name() string { return "fundamental" }

func (Fundamental) Classify(text []rune) []host.Class {
	out := make([]host.Class, len(text))
	for i, r := range text {
		switch {
		case unicode.IsSpace(r):
			out[i] = host.ClassWhitespace
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			out[i] = host.ClassWord
		default:
			out[i] = host.ClassPunctuation
		}
	}
	return out
}

func (Fundamental) Fontify(text []rune, beg, end int) ([]host.FaceSpan, error) {
	return nil, nil
}
