package types

import (
	"go/ast"
	"go/token"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/utils"
)

// newFieldMembers returns one member per name of the field. Names declared
// together share fragments and directives.
func newFieldMembers(field *ast.Field, prefix string) []*Member {
	fragments := utils.CommentFragments(field.Doc)
	directives := annotations.ParseDirectives(prefix, field.Doc)

	if len(field.Names) == 0 {
		return []*Member{{
			Name:       embeddedName(field.Type),
			Embedded:   true,
			Placement:  annotations.PlacementField,
			Pos:        embeddedPos(field.Type),
			Fragments:  fragments,
			Directives: directives,
		}}
	}

	out := make([]*Member, 0, len(field.Names))
	for _, name := range field.Names {
		out = append(out, &Member{
			Name:       name.Name,
			Placement:  annotations.PlacementField,
			Pos:        name.Pos(),
			Fragments:  fragments,
			Directives: directives,
		})
	}
	return out
}

// embeddedName is the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}

func embeddedPos(expr ast.Expr) token.Pos {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedPos(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Pos()
	case *ast.IndexExpr:
		return embeddedPos(t.X)
	case *ast.IndexListExpr:
		return embeddedPos(t.X)
	}
	return expr.Pos()
}
