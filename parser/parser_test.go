package parser

import (
	"bytes"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/types"
)

func writeFile(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "package p\n\n// B.\ntype B int\n")
	writeFile(t, dir, "a.go", "package p\n\n// A.\ntype A int\n")
	writeFile(t, dir, "a_test.go", "package p\n\ntype InTest int\n")
	writeFile(t, dir, "documented_gen.go", "// Code generated by gondoc. DO NOT EDIT.\n\npackage p\n\nconst ADocs = \"A.\"\n")
	writeFile(t, dir, "notes.txt", "not go")

	var logs bytes.Buffer
	ctx := types.NewProcessContext(nil, logger.NewLogger(logger.LogLevelDebug, &logs), token.NewFileSet())
	p := NewParser(ctx)
	require.NoError(t, p.ParseDir(dir))
	assert.Len(t, p.Files(), 2)
	assert.Contains(t, logs.String(), "skipping generated file")

	var names []string
	for _, d := range p.Declarations() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestParseSourceErrors(t *testing.T) {
	p := NewParser(newTestContext(nil))
	require.NoError(t, p.ParseSource("a.go", "package p\n"))

	err := p.ParseSource("b.go", "package q\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package q, expected p")

	err = p.ParseSource("c.go", "package p\nfunc {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse c.go")
}

func TestTypeCheckKeepsPartialInfo(t *testing.T) {
	p := NewParser(newTestContext(nil))
	require.NoError(t, p.ParseSource("a.go", `package p

type Level int

const Low Level = iota

var broken = undefined
`))
	err := p.TypeCheck()
	require.Error(t, err)
	require.NotNil(t, p.Info())

	decls := p.Declarations()
	var level bool
	for _, d := range decls {
		if d.Name() == "Level" {
			level = true
			require.Len(t, d.Members, 1)
			assert.NotNil(t, d.Members[0].Value)
		}
	}
	assert.True(t, level)
}

func TestValidatorReportsDirectives(t *testing.T) {
	p := NewParser(newTestContext(nil))
	require.NoError(t, p.ParseSource("a.go", `package p

// A.
//documented:docs
//documented:nope
type A int
`))
	v := NewValidator()
	bindings, found := v.Validate(p.Declarations()[0])
	require.Len(t, bindings, 1)
	assert.Equal(t, "docs_const", bindings[0].spec.Name)
	require.Len(t, found, 2)
	assert.Equal(t, diag.SevWarning, found[0].Severity)
	assert.Contains(t, found[0].Message, "attribute `docs` is deprecated")
	assert.Equal(t, diag.SevError, found[1].Severity)
	assert.Contains(t, found[1].Message, "unknown attribute `nope`")
}
