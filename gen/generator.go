package gen

import (
	"fmt"
	"sort"
	"sync"
)

// OutputFile represents a single generated file.
type OutputFile struct {
	Path     string // Relative path within output directory
	Content  []byte
	Scaffold bool // If true, only write when file doesn't already exist
}

// Generator is the interface all code generators implement.
// Each generator produces output files for one concern (the wrapper
// layer itself, the global support header).
type Generator interface {
	// Name returns the generator name (e.g., "wrappers", "global").
	Name() string

	// Generate produces output files for the given metadata.
	Generate(ctx *Context) ([]*OutputFile, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Generator{}
)

// Register adds a generator factory to the registry.
// Typically called from init() in each generator's file.
func Register(name string, factory func() Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("generator %q already registered", name))
	}
	registry[name] = factory
}

// Get returns a new instance of the named generator.
func Get(name string) (Generator, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// All returns the names of all registered generators, sorted.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultGenerators returns the generators of a full run, in execution
// order. The global support header precedes the wrapper units that
// include it.
func DefaultGenerators() []string {
	return []string{"global", "wrappers"}
}
