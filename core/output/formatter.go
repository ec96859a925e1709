// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"msp-pricing/core/catalog"
	"msp-pricing/core/pricing"
	"msp-pricing/core/quote"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is whatever a command wants rendered. Exactly one payload is set.
type Report struct {
	// Result is a single calculator result
	Result *pricing.Result `json:"result,omitempty"`

	// Comparison holds all three models side by side
	Comparison *pricing.Comparison `json:"comparison,omitempty"`

	// Quote is an itemised quote
	Quote *quote.Quote `json:"quote,omitempty"`

	// Catalog is rendered as its price list
	Catalog *catalog.Catalog `json:"-"`

	// Users is the head count the result was computed for
	Users int `json:"users,omitempty"`

	// Language selects how amounts are written in human formats
	Language types.Language `json:"language,omitempty"`
}

func (r *Report) validate() error {
	set := 0
	for _, present := range []bool{r.Result != nil, r.Comparison != nil, r.Quote != nil, r.Catalog != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return errors.InvalidInput("report must carry exactly one payload, got %d", set)
	}
	return nil
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.UnknownKey("output format", string(format))
	}
	return f, nil
}

// Formats lists the registered formats alphabetically
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the registry holding the built-in formatters
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		_ = defaultRegistry.Register(&CLIFormatter{})
		_ = defaultRegistry.Register(&JSONFormatter{Indent: true})
		_ = defaultRegistry.Register(&MarkdownFormatter{})
	})
	return defaultRegistry
}

// Render looks up format in the default registry and renders report with it
func Render(w io.Writer, format Format, report *Report) error {
	f, err := Default().Get(Format(strings.ToLower(string(format))))
	if err != nil {
		return err
	}
	return f.Render(w, report)
}
