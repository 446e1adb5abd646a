// Package batchio provides line-oriented stdin/stdout/stderr helpers for entry
// points running in a batch process.
package batchio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IO is a set of streams. The package-level functions use Default.
type IO struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

func New(in io.Reader, out, errw io.Writer) *IO {
	return &IO{in: bufio.NewReader(in), out: out, err: errw}
}

var std = New(os.Stdin, os.Stdout, os.Stderr)

// Default returns the process-wide streams.
func Default() *IO { return std }

// Message writes a formatted line to the error stream.
func (s *IO) Message(format string, args ...any) {
	fmt.Fprintf(s.err, format, args...)
	io.WriteString(s.err, "\n")
}

// Print writes a formatted line to the output stream. The newline is written
// explicitly; format should not end with one.
func (s *IO) Print(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
	io.WriteString(s.out, "\n")
}

// ReadLine returns the next input line without its terminator. ok is false at
// end of input; read errors are reported the same way.
func (s *IO) ReadLine() (line string, ok bool) {
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true
}

func Message(format string, args ...any) { std.Message(format, args...) }

func Print(format string, args ...any) { std.Print(format, args...) }

func ReadLine() (string, bool) { return std.ReadLine() }
