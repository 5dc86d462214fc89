package svgdraw

import (
	"fmt"
	"sort"
	"sync"
)

// Config is passed to the backend factories.
type Config struct {
	// Width and Height are the output size, for the backends
	// which need one. Zero means the document view box size.
	Width, Height float64
}

// Target is a Backend producing a file.
type Target interface {
	Backend
	// WriteFile saves the rendered output.
	WriteFile(path string) error
}

// Factory creates a new backend instance.
type Factory func(Config) (Target, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a backend factory with the given name,
// typically from the init function of the backend package.
// It panics if factory is nil or if the name is already used.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("svgdraw: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("svgdraw: Register called twice for " + name)
	}
	factories[name] = factory
}

// NewBackend creates a new backend instance by name.
func NewBackend(name string, config Config) (Target, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("svgdraw: unknown backend %q (forgotten import?)", name)
	}
	return factory(config)
}

// Backends returns the sorted list of registered backend names.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
