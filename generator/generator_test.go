package generator

import (
	"bytes"
	"errors"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/parser"
	"github.com/pablor21/gondoc/types"
)

func resolvePackage(t *testing.T, dir, src string, typeCheck bool) *types.PackageResult {
	t.Helper()
	ctx := types.NewProcessContext(nil, logger.NewLogger(logger.LogLevelNone, io.Discard), token.NewFileSet())
	p := parser.NewParser(ctx)
	require.NoError(t, p.ParseSource(filepath.Join(dir, "a.go"), src))
	if typeCheck {
		require.NoError(t, p.TypeCheck())
	}
	res := parser.NewOrchestrator(ctx).ProcessPackage(p)
	require.False(t, res.Bag.HasErrors(), "unexpected diagnostics: %v", res.Bag.Items())
	return res
}

func generate(t *testing.T, src string, typeCheck bool) string {
	t.Helper()
	res := resolvePackage(t, t.TempDir(), src, typeCheck)
	file, err := New("").Generate(res)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, DefaultOutput, filepath.Base(file.Path))
	return string(file.Content)
}

func TestGenerateDocsConst(t *testing.T) {
	out := generate(t, `package p

// Hello
//   world.
//documented:docs_const
type Greeting int
`, false)

	want := `// Code generated by gondoc. DO NOT EDIT.

package p

// GreetingDocs is the documentation of Greeting.
const GreetingDocs = "Hello\nworld."
`
	assert.Equal(t, want, out)
}

func TestGenerateDocsConstDefault(t *testing.T) {
	out := generate(t, `package p

//documented:docs_const rename = "about", vis = exported, default = fallback + "!"
const x = 1
`, false)

	assert.Contains(t, out, `const About = fallback + "!"`)
	assert.NotContains(t, out, "import")
}

func TestGenerateDocs(t *testing.T) {
	out := generate(t, `package p

// A widget.
//documented:documented
type Widget struct{}

//documented:documented_opt
type Gadget struct{}

// A pair.
//documented:documented_opt
type Pair[K comparable, V any] struct{}
`, false)

	assert.Contains(t, out, `import "github.com/pablor21/gondoc/documented"`)
	assert.Contains(t, out, "var _ documented.Documented = (*Widget)(nil)")
	assert.Contains(t, out, "func (Widget) Docs() string {\n\treturn \"A widget.\"\n}")
	assert.Contains(t, out, "var _ documented.DocumentedOpt = (*Gadget)(nil)")
	assert.Contains(t, out, "func (Gadget) Docs() (string, bool) {\n\treturn \"\", false\n}")
	assert.Contains(t, out, "func (Pair[K, V]) Docs() (string, bool) {\n\treturn \"A pair.\", true\n}")
	assert.NotContains(t, out, "(*Pair)")
}

func TestGenerateFields(t *testing.T) {
	out := generate(t, `package p

//documented:documented_fields rename_all = "snake_case"
type Config struct {
	// Listen address.
	Addr string
	// Unnamed.
	_ int
	// Worker count.
	//documented:documented_fields rename = "n"
	Workers int
}
`, false)

	assert.Contains(t, out, "var _Config_fieldDocs = [3]string{\n\t\"Listen address.\",\n\t\"Unnamed.\",\n\t\"Worker count.\",\n}")
	assert.Contains(t, out, "var _Config_fieldNames = [3]string{\n\t\"addr\",\n\t\"\",\n\t\"n\",\n}")
	assert.Contains(t, out, "\"addr\": 0,")
	assert.Contains(t, out, "\"n\":    2,")
	assert.Contains(t, out, "var _ documented.DocumentedFields = (*Config)(nil)")
	assert.Contains(t, out, "func (Config) FieldDocs() []string {\n\tdocs := _Config_fieldDocs\n\treturn docs[:]\n}")
	assert.Contains(t, out, "func (Config) FieldNames() []string {")
	assert.Contains(t, out, "return documented.Lookup(_Config_fieldDocs[:], _Config_fieldIndex, name)")
}

func TestGenerateFieldsOpt(t *testing.T) {
	out := generate(t, `package p

//documented:documented_fields_opt
type Pair[K comparable, V any] struct {
	// Key.
	K K
	V V
	//documented:documented_fields default = "none"
	X int
}
`, false)

	assert.Contains(t, out, "var _Pair_fieldDocs = [3]documented.Option{\n\tdocumented.Some(\"Key.\"),\n\tdocumented.None(),\n\tdocumented.Some(\"none\"),\n}")
	assert.Contains(t, out, "func (Pair[K, V]) FieldDocs() []documented.Option {")
	assert.Contains(t, out, "return documented.LookupOpt(_Pair_fieldDocs[:], _Pair_fieldIndex, name)")
	assert.NotContains(t, out, "var _ documented.")
}

func TestGenerateVariants(t *testing.T) {
	out := generate(t, `package p

//documented:documented_variants
type Level int

const (
	// Low level.
	Low Level = iota
	// High level.
	High
)

//documented:documented_variants_opt
type Mode string

const (
	// Fast mode.
	Fast Mode = "fast"
	Slow Mode = "slow"
)
`, true)

	assert.Contains(t, out, "var _ documented.DocumentedVariants = (*Level)(nil)")
	assert.Contains(t, out, `func (v Level) VariantDocs() string {
	switch v {
	case Low:
		return "Low level."
	case High:
		return "High level."
	}
	return ""
}`)
	assert.Contains(t, out, `func (v Mode) VariantDocs() (string, bool) {
	switch v {
	case Fast:
		return "Fast mode.", true
	}
	return "", false
}`)
	assert.NotContains(t, out, "case Slow")
}

func TestGenerateEmptyVariantsOpt(t *testing.T) {
	out := generate(t, `package p

//documented:documented_variants_opt
type Mode int

const Off Mode = 0
`, true)

	assert.Contains(t, out, "func (v Mode) VariantDocs() (string, bool) {\n\treturn \"\", false\n}")
	assert.NotContains(t, out, "switch")
}

func TestGenerateNothing(t *testing.T) {
	res := resolvePackage(t, t.TempDir(), "package p\n\ntype T int\n", false)
	file, err := New("").Generate(res)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGenerateMissingEmitter(t *testing.T) {
	res := resolvePackage(t, t.TempDir(), "package p\n\n// T.\n//documented:documented\ntype T int\n", false)
	_, err := New("").WithRegistry(NewRegistry()).Generate(res)
	require.Error(t, err)
	ds := diag.Diagnostics(err)
	require.Len(t, ds, 1)
	assert.Equal(t, diag.GenerateFailed, ds[0].Code)
	assert.Contains(t, ds[0].Message, "no emitter registered for `documented`")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"docs_const", "documented", "documented_fields", "documented_variants"} {
		e, ok := r.GetByName(name)
		require.True(t, ok, name)
		byAttr, ok := r.ForAttribute(e.Attributes()[0])
		require.True(t, ok)
		assert.Equal(t, e.Name(), byAttr.Name())
	}
	_, ok := r.ForAttribute("documented_opt")
	assert.False(t, ok)
}

func TestWriteAndStale(t *testing.T) {
	dir := t.TempDir()
	src := "package p\n\n// T.\n//documented:docs_const\ntype T int\n"
	res := resolvePackage(t, dir, src, false)
	g := New("docs_gen.go")
	path := filepath.Join(dir, "docs_gen.go")

	stale, err := g.Stale(res)
	require.NoError(t, err)
	assert.True(t, stale)

	written, err := g.Write(res)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte(Header)))

	stale, err = g.Stale(res)
	require.NoError(t, err)
	assert.False(t, stale)

	written, err = g.Write(res)
	require.NoError(t, err)
	assert.Empty(t, written, "unchanged output is not rewritten")

	empty := resolvePackage(t, dir, "package p\n\ntype T int\n", false)
	stale, err = g.Stale(empty)
	require.NoError(t, err)
	assert.True(t, stale)

	written, err = g.Write(empty)
	require.NoError(t, err)
	assert.Equal(t, path, written)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteRefusesHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultOutput)
	require.NoError(t, os.WriteFile(path, []byte("package p\n"), 0o644))

	res := resolvePackage(t, dir, "package p\n\n// T.\n//documented:docs_const\ntype T int\n", false)
	_, err := New("").Write(res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotGenerated))

	_, err = New("").Stale(res)
	assert.True(t, errors.Is(err, ErrNotGenerated))

	empty := resolvePackage(t, dir, "package p\n", false)
	written, err := New("").Write(empty)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.FileExists(t, path)
}
