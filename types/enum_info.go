package types

import (
	"go/ast"
	gotypes "go/types"

	"github.com/pablor21/gondoc/annotations"
)

// enumCandidate tracks a defined type with a basic underlying type while the
// package's constants are collected.
type enumCandidate struct {
	decl *Declaration
}

// constTypeName returns the local type name a constant belongs to. typ is the
// type carried over from the previous spec of the block, used when the spec
// repeats it implicitly, and values the expressions in effect for the spec.
func constTypeName(name *ast.Ident, values []ast.Expr, i int, typ ast.Expr, info *gotypes.Info) string {
	if info != nil {
		if obj, ok := info.Defs[name].(*gotypes.Const); ok {
			if named, ok := obj.Type().(*gotypes.Named); ok && named.Obj().Pkg() == obj.Pkg() {
				return named.Obj().Name()
			}
			return ""
		}
	}
	if typ != nil {
		if id, ok := typ.(*ast.Ident); ok {
			return id.Name
		}
		return ""
	}
	// T(x) conversions give an untyped spec a type.
	if i < len(values) {
		if call, ok := values[i].(*ast.CallExpr); ok && len(call.Args) == 1 {
			if id, ok := call.Fun.(*ast.Ident); ok {
				return id.Name
			}
		}
	}
	return ""
}

func newEnumMember(name *ast.Ident, decl *Declaration, info *gotypes.Info) *Member {
	m := &Member{
		Name:       name.Name,
		Placement:  annotations.PlacementEnumValue,
		Pos:        name.Pos(),
		Fragments:  decl.Fragments,
		Directives: decl.Directives,
	}
	if info != nil {
		if obj, ok := info.Defs[name].(*gotypes.Const); ok {
			m.Value = obj.Val()
		}
	}
	return m
}
