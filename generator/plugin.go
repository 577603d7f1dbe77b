package generator

import (
	"bytes"

	"github.com/pablor21/gondoc/types"
)

// GeneratedFile represents a single generated output file
type GeneratedFile struct {
	// Path is where the file is written, usually inside the package directory.
	Path string

	// Content is the formatted file content
	Content []byte
}

// Emitter writes the code for the tables of one attribute family.
type Emitter interface {
	// Name returns the emitter identifier
	Name() string

	// Attributes returns the base attribute names handled by the emitter
	Attributes() []string

	// NeedsRuntime reports whether the code for t refers to the documented package
	NeedsRuntime(t *types.DocTable) bool

	// Emit appends the declarations for t to buf
	Emit(buf *bytes.Buffer, t *types.DocTable) error
}

// Registry manages registered emitters
type Registry struct {
	emitters    map[string]Emitter
	byAttribute map[string]Emitter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		emitters:    make(map[string]Emitter),
		byAttribute: make(map[string]Emitter),
	}
}

// DefaultRegistry returns a registry holding the built-in emitters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(constEmitter{})
	r.Register(docsEmitter{})
	r.Register(fieldsEmitter{})
	r.Register(variantsEmitter{})
	return r
}

// Register adds an emitter, replacing any previous one for the same attributes
func (r *Registry) Register(e Emitter) {
	r.emitters[e.Name()] = e
	for _, attr := range e.Attributes() {
		r.byAttribute[attr] = e
	}
}

// GetByName retrieves an emitter by name
func (r *Registry) GetByName(name string) (Emitter, bool) {
	e, ok := r.emitters[name]
	return e, ok
}

// ForAttribute retrieves the emitter for a base attribute
func (r *Registry) ForAttribute(base string) (Emitter, bool) {
	e, ok := r.byAttribute[base]
	return e, ok
}
