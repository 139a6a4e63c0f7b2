package native

import (
	"fmt"
	"sort"
	"sync"
)

// Factory opens a fresh environment for a registered backend.
type Factory func() (Env, error)

var (
	backendsMu sync.Mutex
	backends   = make(map[string]Factory)
)

// Register makes a backend available under the given name. It is meant to
// be called from a backend package's init and panics on duplicates, like
// database/sql driver registration.
func Register(name string, factory Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if factory == nil {
		panic("native: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("native: Register called twice for backend " + name)
	}
	backends[name] = factory
}

// Open creates an environment using the named backend.
func Open(name string) (Env, error) {
	backendsMu.Lock()
	factory, ok := backends[name]
	backendsMu.Unlock()

	if !ok {
		return nil, fmt.Errorf("native: unknown backend %q (available: %v)", name, Backends())
	}

	return factory()
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
