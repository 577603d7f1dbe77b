// Package generator writes the Go code exposing resolved documentation.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/types"
	"github.com/pablor21/gondoc/utils"
)

const (
	// Header marks files written by the generator.
	Header = "// Code generated by gondoc. DO NOT EDIT."
	// DefaultOutput is the file name used when none is configured.
	DefaultOutput = "documented_gen.go"
	// RuntimePath is the import path of the runtime support package.
	RuntimePath = "github.com/pablor21/gondoc/documented"
)

// Generator renders package results into Go files.
type Generator struct {
	registry *Registry
	output   string
}

// New creates a generator writing files named output, using the built-in
// emitters.
func New(output string) *Generator {
	if output == "" {
		output = DefaultOutput
	}
	return &Generator{registry: DefaultRegistry(), output: output}
}

// WithRegistry replaces the emitter registry.
func (g *Generator) WithRegistry(r *Registry) *Generator {
	g.registry = r
	return g
}

// Generate renders the tables of res. It returns nil when there is nothing
// to generate.
func (g *Generator) Generate(res *types.PackageResult) (*GeneratedFile, error) {
	if len(res.Tables) == 0 {
		return nil, nil
	}

	var body bytes.Buffer
	runtime := false
	for _, t := range res.Tables {
		e, ok := g.registry.ForAttribute(t.Base)
		if !ok {
			return nil, generateError(t, "no emitter registered for `%s`", t.Base)
		}
		if err := e.Emit(&body, t); err != nil {
			return nil, generateError(t, "%s: %v", e.Name(), err)
		}
		runtime = runtime || e.NeedsRuntime(t)
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteString("\n\npackage ")
	buf.WriteString(res.Name)
	buf.WriteString("\n\n")
	if runtime && res.Path != RuntimePath {
		fmt.Fprintf(&buf, "import %q\n\n", RuntimePath)
	}
	buf.Write(body.Bytes())

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, diag.NewError(diag.Errorf(diag.GenerateFailed, diag.Span{},
			"generated code for package %s does not format: %v", res.Name, err))
	}
	return &GeneratedFile{
		Path:    filepath.Join(res.Dir, g.output),
		Content: formatted,
	}, nil
}

func generateError(t *types.DocTable, format string, args ...any) error {
	return diag.NewError(diag.Errorf(diag.GenerateFailed, t.Decl.NameSpan(), format, args...))
}

// Write generates and writes the file for res. When there is nothing to
// generate, a file previously written by the generator is removed. It returns
// the path touched, or "" when nothing changed.
func (g *Generator) Write(res *types.PackageResult) (string, error) {
	file, err := g.Generate(res)
	if err != nil {
		return "", err
	}
	if file == nil {
		path := filepath.Join(res.Dir, g.output)
		if !isGenerated(path) {
			return "", nil
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove stale %s: %w", path, err)
		}
		return path, nil
	}

	if existing, err := os.ReadFile(file.Path); err == nil && bytes.Equal(existing, file.Content) {
		return "", nil
	}
	if utils.FileExists(file.Path) && !isGenerated(file.Path) {
		return "", fmt.Errorf("refusing to overwrite %s: %w", file.Path, ErrNotGenerated)
	}
	if err := utils.EnsureDir(filepath.Dir(file.Path)); err != nil {
		return "", err
	}
	if err := os.WriteFile(file.Path, file.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", file.Path, err)
	}
	return file.Path, nil
}

// ErrNotGenerated is returned when the output file exists but was not
// written by the generator.
var ErrNotGenerated = errors.New("not generated by gondoc")

func isGenerated(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.HasPrefix(data, []byte(Header))
}

// Stale reports whether the file on disk differs from what Generate produces.
func (g *Generator) Stale(res *types.PackageResult) (bool, error) {
	file, err := g.Generate(res)
	if err != nil {
		return false, err
	}
	path := filepath.Join(res.Dir, g.output)
	existing, readErr := os.ReadFile(path)
	if file == nil {
		return readErr == nil && isGenerated(path), nil
	}
	if readErr != nil {
		return true, nil
	}
	if !bytes.HasPrefix(existing, []byte(Header)) {
		return false, fmt.Errorf("%s: %w", path, ErrNotGenerated)
	}
	return !bytes.Equal(existing, file.Content), nil
}
