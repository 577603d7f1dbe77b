// Package parser extracts documented declarations from Go source and resolves
// their directives into documentation tables.
package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	gotypes "go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/pablor21/gondoc/types"
	"github.com/pablor21/gondoc/utils"
)

// Parser holds the syntax of one package.
type Parser struct {
	ctx   *types.ProcessContext
	files []*ast.File
	info  *gotypes.Info
	name  string
	path  string
	dir   string
}

func NewParser(ctx *types.ProcessContext) *Parser {
	if ctx == nil {
		ctx = types.NewProcessContext(nil, nil, nil)
	}
	return &Parser{ctx: ctx}
}

// NewParserFromPackage wraps a package loaded with utils.LoadMode, leaving
// out generated files. The package's file set must be the context's.
func NewParserFromPackage(ctx *types.ProcessContext, pkg *packages.Package) *Parser {
	p := NewParser(ctx)
	for _, f := range pkg.Syntax {
		if !ast.IsGenerated(f) {
			p.files = append(p.files, f)
		}
	}
	p.info = pkg.TypesInfo
	p.name = pkg.Name
	p.path = utils.GetPackageFullPath(pkg)
	p.dir = utils.PackageDir(pkg)
	return p
}

// ParseSource parses one file. src may be nil, in which case the file is read
// from disk.
func (p *Parser) ParseSource(filename string, src any) error {
	_, err := p.parseFile(filename, src, false)
	return err
}

// ParseDir parses the non-test Go files of dir, skipping generated files.
func (p *Parser) ParseDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		added, err := p.parseFile(path, nil, true)
		if err != nil {
			return err
		}
		if !added {
			p.ctx.Logger.Debug("skipping generated file", "file", path)
		}
	}
	p.dir = dir
	return nil
}

func (p *Parser) parseFile(filename string, src any, skipGenerated bool) (bool, error) {
	f, err := parser.ParseFile(p.ctx.Fset, filename, src, parser.ParseComments)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if skipGenerated && ast.IsGenerated(f) {
		return false, nil
	}
	if p.name == "" {
		p.name = f.Name.Name
	} else if f.Name.Name != p.name {
		return false, fmt.Errorf("%s: package %s, expected %s", filename, f.Name.Name, p.name)
	}
	if p.dir == "" {
		p.dir = filepath.Dir(filename)
	}
	p.files = append(p.files, f)
	return true, nil
}

// TypeCheck fills in type information so enum constants carry their values.
// Type errors are returned but the partial information is still used.
func (p *Parser) TypeCheck() error {
	info := &gotypes.Info{
		Defs: make(map[*ast.Ident]gotypes.Object),
	}
	var errs []error
	conf := gotypes.Config{
		Importer: importer.ForCompiler(p.ctx.Fset, "source", nil),
		Error:    func(err error) { errs = append(errs, err) },
	}
	path := p.path
	if path == "" {
		path = p.name
	}
	_, _ = conf.Check(path, p.ctx.Fset, p.files, info)
	p.info = info
	return errors.Join(errs...)
}

func (p *Parser) Files() []*ast.File {
	return p.files
}

func (p *Parser) Info() *gotypes.Info {
	return p.info
}

// Declarations extracts the package's declarations.
func (p *Parser) Declarations() []*types.Declaration {
	pr := types.NewProcessResult()
	pr.ParseFiles(p.ctx, p.files, p.info)
	return pr.Declarations
}
