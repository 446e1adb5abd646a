package isolate

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/roach88/fontverify/internal/batchio"
)

// ExitBatchError is the exit code of a batch process whose entry point could
// not be resolved or loaded, or panicked.
const ExitBatchError = 255

var (
	argsMu sync.Mutex
	args   []string
)

// Args returns the arguments forwarded to the batch process, without the
// program name. It is empty outside a batch process.
func Args() []string {
	argsMu.Lock()
	defer argsMu.Unlock()
	return append([]string(nil), args...)
}

// NoInit reports whether the process was started without init files.
func NoInit() bool {
	return os.Getenv(EnvNoInit) != ""
}

// Main runs the requested entry point and exits when the process was started
// by a script from WithIsolatedProcess. Otherwise it returns immediately.
func Main() {
	name, ok := os.LookupEnv(EnvEntry)
	if !ok {
		return
	}
	module := os.Getenv(EnvModule)
	// Processes started by the entry point must not re-enter batch mode.
	os.Unsetenv(EnvEntry)
	os.Unsetenv(EnvModule)
	os.Exit(RunBatch(name, module, os.Args[1:]))
}

// RunBatch loads module, calls the entry point called name with args
// available from Args, and returns the exit code the process should use.
func RunBatch(name, module string, forwarded []string) (code int) {
	ep, ok := Lookup(name)
	if !ok {
		batchio.Message("fontverify: unknown entry point %q", name)
		return ExitBatchError
	}
	if module != ep.Module {
		batchio.Message("fontverify: entry point %q is defined by module %q, not %q", name, ep.Module, module)
		return ExitBatchError
	}
	load, ok := moduleLoader(module)
	if !ok {
		batchio.Message("fontverify: unknown module %q", module)
		return ExitBatchError
	}
	if err := load(); err != nil {
		batchio.Message("fontverify: load %s: %v", module, err)
		return ExitBatchError
	}

	argsMu.Lock()
	args = append([]string(nil), forwarded...)
	argsMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			batchio.Message("fontverify: entry point %q: %v", name, r)
			code = ExitBatchError
		}
	}()
	return exitCode(ep.Func())
}

// exitCode converts an entry point result into a process exit code.
func exitCode(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float32:
		return floatCode(float64(n))
	case float64:
		return floatCode(n)
	default:
		return 0
	}
}

func floatCode(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

func (ep EntryPoint) String() string {
	return fmt.Sprintf("%s (module %s)", ep.Name, ep.Module)
}
