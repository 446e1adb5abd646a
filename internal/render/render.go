// Package render draws fontified text with each face shown as a terminal
// style.
package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/fontverify/internal/config"
	"github.com/roach88/fontverify/internal/host"
	"github.com/roach88/fontverify/internal/verify"
)

// Renderer maps faces to lipgloss styles. Faces without a style are drawn
// plain.
type Renderer struct {
	styles map[host.Face]lipgloss.Style
}

// New builds a renderer from configured face styles.
func New(faces map[string]config.FaceStyle) *Renderer {
	r := &Renderer{styles: make(map[host.Face]lipgloss.Style, len(faces))}
	for name, fs := range faces {
		st := lipgloss.NewStyle().
			Bold(fs.Bold).
			Italic(fs.Italic).
			Underline(fs.Underline)
		if fs.Fg != "" {
			st = st.Foreground(lipgloss.Color(fs.Fg))
		}
		r.styles[host.Face(name)] = st
	}
	return r
}

// run is a maximal stretch of one face that does not cross a newline.
type run struct {
	face host.Face
	text string
}

// runs splits attrs into same-face stretches. Newlines are emitted as their
// own unstyled run so styles never span lines.
func runs(attrs []verify.CharAttribute) []run {
	var out []run
	var cur strings.Builder
	face := host.NoFace
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, run{face: face, text: cur.String()})
			cur.Reset()
		}
	}
	for _, a := range attrs {
		if a.Char == '\n' {
			flush()
			out = append(out, run{face: host.NoFace, text: "\n"})
			continue
		}
		if a.Face != face {
			flush()
			face = a.Face
		}
		cur.WriteRune(a.Char)
	}
	flush()
	return out
}

// Render returns the text of attrs with every face run styled.
func (r *Renderer) Render(attrs []verify.CharAttribute) string {
	var b strings.Builder
	for _, rn := range runs(attrs) {
		st, ok := r.styles[rn.face]
		if rn.face == host.NoFace || !ok {
			b.WriteString(rn.text)
			continue
		}
		b.WriteString(st.Render(rn.text))
	}
	return b.String()
}

// Legend lists the faces used in attrs, each drawn in its own style.
func (r *Renderer) Legend(attrs []verify.CharAttribute) string {
	seen := map[host.Face]bool{}
	for _, a := range attrs {
		if a.Face != host.NoFace {
			seen[a.Face] = true
		}
	}
	names := make([]string, 0, len(seen))
	for f := range seen {
		names = append(names, string(f))
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, n := range names {
		if st, ok := r.styles[host.Face(n)]; ok {
			parts[i] = st.Render(n)
		} else {
			parts[i] = n
		}
	}
	return strings.Join(parts, "  ")
}
