package fixture

import (
	"fmt"
	"strings"
)

// Content is either a single block of text or an ordered sequence of lines.
type Content struct {
	text    string
	lines   []string
	isLines bool
}

// Text returns block content, inserted verbatim and fontified in one pass.
func Text(s string) Content {
	return Content{text: s}
}

// Lines returns line content. Each line is appended with a trailing newline
// and fontified on its own.
func Lines(lines ...string) Content {
	return Content{lines: lines, isLines: true}
}

// IsLines reports whether c was built with Lines.
func (c Content) IsLines() bool { return c.isLines }

// String returns the text c inserts into a fixture.
func (c Content) String() string {
	if !c.isLines {
		return c.text
	}
	var b strings.Builder
	for _, l := range c.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Load inserts c into f and fontifies what it inserted, then moves point back
// to the start of the buffer. Fontification errors are returned as-is and
// abort loading.
func Load(f *Fixture, c Content) error {
	buf := f.Buffer
	if !c.isLines {
		buf.Insert(c.text)
		if err := buf.FontifyAll(); err != nil {
			return fmt.Errorf("load fixture %q: %w", f.Name, err)
		}
		buf.SetPoint(0)
		return nil
	}

	for i, line := range c.lines {
		buf.SetPoint(buf.Len())
		start := buf.Point()
		buf.Insert(line + "\n")
		if err := buf.Fontify(start, buf.Point()); err != nil {
			return fmt.Errorf("load fixture %q line %d: %w", f.Name, i+1, err)
		}
	}
	buf.SetPoint(0)
	return nil
}
