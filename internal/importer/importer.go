// Package importer reads transaction files back into the ledger, such as a
// previous export restored on a new machine.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/famwallet/famwallet/internal/model"
)

// Parser converts an export file into transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForFile picks a parser from an explicit format or, if empty, from the
// file extension.
func (r *Registry) ForFile(path, format string) (Parser, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("no parser for format %q (file %s)", format, filepath.Base(path))
	}
	return p, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JSONParser{})
	r.Register(&CSVParser{})
	return r
}
