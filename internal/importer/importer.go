package importer

import (
	"io"
	"path/filepath"
	"strings"
)

// Parser reads a tabular source into rows of cells. The first row is the header.
type Parser interface {
	Parse(r io.Reader) ([][]string, error)
	Format() string
	Extensions() []string
}

// Registry holds named parsers and the file extensions they claim.
type Registry struct {
	parsers  map[string]Parser
	byExt    map[string]Parser
	fallback string
}

// NewRegistry creates an empty parser registry. Paths with an unknown
// extension resolve to the fallback format.
func NewRegistry(fallback string) *Registry {
	return &Registry{
		parsers:  make(map[string]Parser),
		byExt:    make(map[string]Parser),
		fallback: strings.ToLower(fallback),
	}
}

// Register adds a parser. Panics on duplicate format or extension.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p

	for _, ext := range p.Extensions() {
		ext = strings.ToLower(ext)
		if _, ok := r.byExt[ext]; ok {
			panic("duplicate parser extension: " + ext)
		}
		r.byExt[ext] = p
	}
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForPath picks a parser by file extension.
func (r *Registry) ForPath(path string) Parser {
	if p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return p
	}
	return r.Get(r.fallback)
}

// DefaultRegistry returns a registry with all built-in parsers configured from opts.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry("csv")
	r.Register(&DelimitedParser{Name: "csv", Comma: opts.delimiter(), Encoding: opts.Encoding, Exts: []string{".csv", ".txt"}})
	r.Register(&DelimitedParser{Name: "tsv", Comma: '\t', Encoding: opts.Encoding, Exts: []string{".tsv", ".tab"}})
	r.Register(&XLSXParser{Sheet: opts.Sheet})
	r.Register(&XLSParser{Sheet: opts.Sheet})
	return r
}
