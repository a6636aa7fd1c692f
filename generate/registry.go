package generate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownFormat is returned by New for a format no writer registered.
var ErrUnknownFormat = errors.New("unknown output format")

// Factory creates a fresh Writer for one generation run.
type Factory func() Writer

type format struct {
	name        string
	description string
	factory     Factory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]format)
)

// Register makes a writer available under name (matched case-insensitively).
// Registering the same name twice panics.
func Register(name, description string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("generate: Register factory is nil for " + name)
	}
	key := strings.ToLower(name)
	if _, dup := registry[key]; dup {
		panic("generate: Register called twice for format " + name)
	}
	registry[key] = format{name: name, description: description, factory: factory}
}

// New creates the writer registered under name.
func New(name string) (Writer, error) {
	registryMu.RLock()
	f, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return f.factory(), nil
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for _, f := range registry {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description a format registered with.
func Describe(name string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[strings.ToLower(name)]
	return f.description, ok
}
