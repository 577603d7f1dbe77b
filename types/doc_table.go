package types

import (
	"go/token"

	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/docs"
	"github.com/pablor21/gondoc/lookup"
)

// Item is one resolved member.
type Item struct {
	// Name is the exposed name. It is empty when Named is false.
	Name  string
	Named bool
	// Ident is the member's Go identifier.
	Ident string
	Docs  docs.Value
	Pos   token.Pos
}

// DocTable is the resolved output of one attribute on one declaration.
type DocTable struct {
	Attribute string
	Base      string
	Optional  bool
	Decl      *Declaration
	// Docs is the declaration's own documentation, for attributes that
	// document the declaration itself.
	Docs docs.Value
	// ConstNames are the constants a docs_const directive emits, one per
	// declared name.
	ConstNames []string
	Items      []Item
	// Index is set for field tables.
	Index *lookup.Table
}

// PackageResult is everything resolved for one package.
type PackageResult struct {
	Name   string
	Path   string
	Dir    string
	Fset   *token.FileSet
	Tables []*DocTable
	Bag    *diag.Bag
}
