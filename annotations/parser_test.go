package annotations

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, src string) (*token.FileSet, *ast.CommentGroup) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", src, parser.ParseComments)
	require.NoError(t, err)
	gd := f.Decls[0].(*ast.GenDecl)
	return fset, gd.Doc
}

func TestParseDirectives(t *testing.T) {
	src := `package x

// Widget is documented.
//documented:docs_const vis = exported,  rename = "W"  
//go:generate gondoc
//documented:documented_fields
//other:thing trim = true
// documented:not_a_directive
type Widget struct{}
`
	fset, doc := parseDoc(t, src)
	dirs := ParseDirectives("", doc)
	require.Len(t, dirs, 2)

	assert.Equal(t, AttrDocsConst, dirs[0].Attribute)
	assert.Equal(t, `vis = exported,  rename = "W"`, dirs[0].Args)
	pos := fset.Position(dirs[0].ArgsPos)
	assert.Equal(t, 4, pos.Line)
	assert.Equal(t, 25, pos.Column)
	name := fset.Position(dirs[0].NameSpan.Pos)
	assert.Equal(t, 3, name.Column)
	assert.Equal(t, len("documented:docs_const"), int(dirs[0].NameSpan.End-dirs[0].NameSpan.Pos))

	assert.Equal(t, AttrDocumentedFields, dirs[1].Attribute)
	assert.Empty(t, dirs[1].Args)

	other := ParseDirectives("other", doc)
	require.Len(t, other, 1)
	assert.Equal(t, "thing", other[0].Attribute)
}

func TestDirectiveOptionsPositions(t *testing.T) {
	src := `package x

//documented:docs_const trim = true, trim = false
const A = 1
`
	fset, doc := parseDoc(t, src)
	dirs := ParseDirectives(DefaultPrefix, doc)
	require.Len(t, dirs, 1)

	opts, err := dirs[0].Options(AllKeys)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, 25, fset.Position(opts[0].Span.Pos).Column)
	assert.Equal(t, 38, fset.Position(opts[1].Span.Pos).Column)
}

func TestIsDirective(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"//go:generate stringer", true},
		{"//documented:docs_const", true},
		{"//line foo.go:10", true},
		{"//export Foo", true},
		{"// documented:docs_const", false},
		{"//Documented:docs", false},
		{"// plain text", false},
		{"//nolint", false},
		{"/* block */", false},
		{"//a:", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDirective(tt.text), tt.text)
	}
}

func TestLookupAttribute(t *testing.T) {
	spec, deprecated := LookupAttribute("documented_fields_opt")
	require.NotNil(t, spec)
	assert.False(t, deprecated)
	assert.Equal(t, AttrDocumentedFields, spec.Base)
	assert.True(t, spec.Optional)
	assert.True(t, spec.IsValidOn(PlacementStruct))
	assert.False(t, spec.IsValidOn(PlacementFunction))
	assert.True(t, spec.IsMemberOn(PlacementField))

	spec, deprecated = LookupAttribute("docs")
	require.NotNil(t, spec)
	assert.True(t, deprecated)
	assert.Equal(t, AttrDocsConst, spec.Name)

	spec, _ = LookupAttribute("documented_unions")
	assert.Nil(t, spec)

	assert.True(t, MatchesAttribute("docs", AttrDocsConst))
	assert.True(t, MatchesAttribute("documented_opt", AttrDocumentedOpt))
	assert.False(t, MatchesAttribute("documented_opt", AttrDocumented))
	assert.Len(t, AttributeNames(), 7)
}
