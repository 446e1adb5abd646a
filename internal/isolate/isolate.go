// Package isolate runs a single entry point in a freshly started copy of the
// host program.
//
// WithIsolatedProcess writes a throwaway shell script that re-executes the
// current executable with the batch environment set. The new process must
// call Main before doing anything else; Main sees the environment, loads the
// entry point's module, calls it and exits with its result:
//
//	func TestMain(m *testing.M) {
//		isolate.Main()
//		os.Exit(m.Run())
//	}
//
// Entry points are resolved through an explicit registry (Register), never by
// reflection.
package isolate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Environment understood by Main.
const (
	EnvEntry  = "FONTVERIFY_BATCH"
	EnvModule = "FONTVERIFY_LOAD"
	EnvNoInit = "FONTVERIFY_NO_INIT"
)

// executable locates the program the script re-launches.
var executable = os.Executable

// WithIsolatedProcess creates an executable script that runs ep in a new
// process, passes its path to body and removes it once body returns, fails
// or panics. The script forwards its arguments to the new process, where they
// are available from Args. body decides how to run the script and how to
// interpret its exit code.
func WithIsolatedProcess(ep EntryPoint, body func(script string) error) (err error) {
	if _, ok := Lookup(ep.Name); !ok {
		return fmt.Errorf("entry point %q is not registered", ep.Name)
	}
	exe, err := executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	f, err := os.CreateTemp("", "fontverify-"+fileSafe(ep.Name)+"-*.sh")
	if err != nil {
		return fmt.Errorf("create script: %w", err)
	}
	path := f.Name()
	defer func() {
		rmErr := os.Remove(path)
		if rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("remove script: %w", rmErr)
		}
	}()

	if err := writeScript(f, exe, ep); err != nil {
		return err
	}
	return body(path)
}

func writeScript(f *os.File, exe string, ep EntryPoint) error {
	if err := f.Chmod(0o700); err != nil {
		f.Close()
		return fmt.Errorf("chmod script: %w", err)
	}
	if _, err := f.WriteString(Script(exe, ep)); err != nil {
		f.Close()
		return fmt.Errorf("write script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close script: %w", err)
	}
	return nil
}

// Script returns the text of a script that runs ep by re-executing exe.
// "$@" excludes the script's own name, so only the caller's arguments are
// forwarded.
func Script(exe string, ep EntryPoint) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "# fontverify batch script for entry point %s\n", ep.Name)
	fmt.Fprintf(&b, "%s=%s\n", EnvEntry, shellQuote(ep.Name))
	fmt.Fprintf(&b, "%s=%s\n", EnvModule, shellQuote(ep.Module))
	fmt.Fprintf(&b, "%s=1\n", EnvNoInit)
	fmt.Fprintf(&b, "export %s %s %s\n", EnvEntry, EnvModule, EnvNoInit)
	fmt.Fprintf(&b, "exec %s \"$@\"\n", shellQuote(exe))
	return b.String()
}

// ExitCode extracts the exit status from the error returned by
// (*exec.Cmd).Run. Errors other than a non-zero exit are returned unchanged.
func ExitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

func fileSafe(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
