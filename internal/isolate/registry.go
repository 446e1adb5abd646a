package isolate

import (
	"fmt"
	"sort"
	"sync"
)

// EntryPoint is a function a batch process runs as its whole workload. Module
// names the code that must be loaded in the new process before Func is
// called; it must have been registered with RegisterModule.
//
// Func's result becomes the exit code when it is numeric, otherwise the
// process exits 0.
type EntryPoint struct {
	Name   string
	Module string
	Func   func() any
}

var (
	mu      sync.Mutex
	modules = map[string]func() error{}
	entries = map[string]EntryPoint{}
)

// RegisterModule makes a loadable module known. load runs once in the batch
// process before the entry point and may be nil. It panics if name is empty
// or already registered.
func RegisterModule(name string, load func() error) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		panic("isolate: RegisterModule with empty name")
	}
	if _, dup := modules[name]; dup {
		panic(fmt.Sprintf("isolate: module %q registered twice", name))
	}
	if load == nil {
		load = func() error { return nil }
	}
	modules[name] = load
}

// Register adds an entry point. Its module must already be registered. It
// panics on an empty or duplicate name, a nil Func or an unknown module.
func Register(ep EntryPoint) {
	mu.Lock()
	defer mu.Unlock()
	switch {
	case ep.Name == "":
		panic("isolate: Register with empty name")
	case ep.Func == nil:
		panic(fmt.Sprintf("isolate: entry point %q has nil Func", ep.Name))
	}
	if _, ok := modules[ep.Module]; !ok {
		panic(fmt.Sprintf("isolate: entry point %q names unknown module %q", ep.Name, ep.Module))
	}
	if _, dup := entries[ep.Name]; dup {
		panic(fmt.Sprintf("isolate: entry point %q registered twice", ep.Name))
	}
	entries[ep.Name] = ep
}

// Lookup returns the entry point registered under name.
func Lookup(name string) (EntryPoint, bool) {
	mu.Lock()
	defer mu.Unlock()
	ep, ok := entries[name]
	return ep, ok
}

// Entries returns every registered entry point sorted by name.
func Entries() []EntryPoint {
	mu.Lock()
	defer mu.Unlock()
	out := make([]EntryPoint, 0, len(entries))
	for _, ep := range entries {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func moduleLoader(name string) (func() error, bool) {
	mu.Lock()
	defer mu.Unlock()
	load, ok := modules[name]
	return load, ok
}
