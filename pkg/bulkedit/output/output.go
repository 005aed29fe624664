// Package output provides formatters for displaying batch reports in
// various formats (pretty, plain, json, yaml).
//
// The package uses a registry pattern so formatter implementations can be
// selected at runtime by name:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, report); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// Formatter is the interface all report formatters implement.
type Formatter interface {
	// Format writes the formatted report to the buffer.
	Format(w *bytes.Buffer, r *types.Report) error
}

// FormatterFactory creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FormatterFactory)}
}

// Register adds a formatter factory under a name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", name, r.names())
	}
	return factory(), nil
}

// Names returns the registered formatter names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

// names returns sorted formatter names. Caller holds the lock.
func (r *Registry) names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry holds the built-in formatters.
var defaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(name string, factory FormatterFactory) {
	defaultRegistry.Register(name, factory)
}

// Get returns a formatter from the default registry.
func Get(name string) (Formatter, error) {
	return defaultRegistry.Get(name)
}

// Names returns the formatter names in the default registry.
func Names() []string {
	return defaultRegistry.Names()
}

// Render formats a report with the named formatter and returns the text.
func Render(name string, r *types.Report) (string, error) {
	f, err := Get(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// summaryLine builds the "N file(s) renamed/removed" closing line shared
// by the text formatters.
func summaryLine(r *types.Report) string {
	switch r.Operation {
	case types.OpRemove:
		return fmt.Sprintf("%d file(s) removed", len(r.Removed))
	default:
		return fmt.Sprintf("%d file(s) renamed", len(r.Renamed))
	}
}
