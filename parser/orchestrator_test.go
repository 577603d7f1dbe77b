package parser

import (
	"errors"
	"go/token"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/gondoc/config"
	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/docs"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/types"
	"github.com/pablor21/gondoc/utils"
)

func newTestContext(cfg *config.Config) *types.ProcessContext {
	return types.NewProcessContext(cfg, logger.NewLogger(logger.LogLevelNone, io.Discard), token.NewFileSet())
}

func process(t *testing.T, src string, typeCheck bool) *types.PackageResult {
	t.Helper()
	ctx := newTestContext(nil)
	p := NewParser(ctx)
	require.NoError(t, p.ParseSource("a.go", src))
	if typeCheck {
		require.NoError(t, p.TypeCheck())
	}
	return NewOrchestrator(ctx).ProcessPackage(p)
}

func codes(bag *diag.Bag, sev diag.Severity) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		if d.Severity == sev {
			out = append(out, d.Code)
		}
	}
	return out
}

func messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Message)
	}
	return out
}

func onlyTable(t *testing.T, res *types.PackageResult) *types.DocTable {
	t.Helper()
	require.False(t, res.Bag.HasErrors(), "unexpected diagnostics: %v", messages(res.Bag))
	require.Len(t, res.Tables, 1)
	return res.Tables[0]
}

func TestMemberTrimOverride(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields
type S struct {
	/*  Hi  */
	A int
	/*  Hi  */
	//documented:documented_fields trim = false
	B int
}
`, false)

	table := onlyTable(t, res)
	require.Len(t, table.Items, 2)
	assert.Equal(t, docs.Value{Source: docs.Text, Text: "Hi"}, table.Items[0].Docs)
	assert.Equal(t, docs.Value{Source: docs.Text, Text: "  Hi  "}, table.Items[1].Docs)
}

func TestRenameBeatsRenameAll(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields rename_all = "kebab-case"
type S struct {
	// Doc.
	some_field int
	// Doc.
	//documented:documented_fields rename = "custom"
	other_field int
	// Blank.
	_ int
}
`, false)

	table := onlyTable(t, res)
	require.Len(t, table.Items, 3)
	assert.Equal(t, "some-field", table.Items[0].Name)
	assert.Equal(t, "custom", table.Items[1].Name)
	assert.False(t, table.Items[2].Named)

	require.NotNil(t, table.Index)
	assert.Equal(t, []string{"some-field", "custom"}, table.Index.Keys())
	i, ok := table.Index.Lookup("custom")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = table.Index.Lookup("other_field")
	assert.False(t, ok)
}

func TestRenameMakesBlankFieldAddressable(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields
type S struct {
	// Padding.
	//documented:documented_fields rename = "padding"
	_ [4]byte
}
`, false)

	table := onlyTable(t, res)
	i, ok := table.Index.Lookup("padding")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestDuplicateOptionsAcrossMembers(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields
type S struct {
	// A.
	//documented:documented_fields trim = true, trim = false
	A int
	// B.
	//documented:documented_fields rename = "x"
	//documented:documented_fields rename = "y"
	B int
}
`, false)

	assert.Empty(t, res.Tables)
	assert.Equal(t, []diag.Code{diag.DuplicateOption, diag.DuplicateOption}, codes(res.Bag, diag.SevError))
	for _, d := range res.Bag.Items() {
		require.Len(t, d.Notes, 1)
		assert.Equal(t, "duplicate declaration here", d.Notes[0].Msg)
	}
}

func TestInapplicableOptions(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields rename = "x"
type A struct{}

//documented:documented_fields
type B struct {
	// Field.
	//documented:documented_fields vis = exported
	F int
}

//documented:documented vis = exported
type C int
`, false)

	assert.Empty(t, res.Tables)
	assert.Equal(t, []diag.Code{diag.InapplicableOption, diag.InapplicableOption, diag.InapplicableOption},
		codes(res.Bag, diag.SevError))
	assert.Contains(t, messages(res.Bag), "option `rename` is not applicable here")
}

func TestMissingDocumentation(t *testing.T) {
	src := `package p

//documented:documented_fields
type Strict struct {
	A int
	B int
	// C.
	C int
}

//documented:documented_fields_opt
type Optional struct {
	A int
	// B.
	B int
}
`
	res := process(t, src, false)

	require.Len(t, res.Tables, 1)
	opt := res.Tables[0]
	assert.Equal(t, "documented_fields_opt", opt.Attribute)
	assert.True(t, opt.Optional)
	assert.False(t, opt.Items[0].Docs.Present())
	assert.Equal(t, "B.", opt.Items[1].Docs.Text)

	assert.Equal(t, []diag.Code{diag.MissingDocumentation, diag.MissingDocumentation}, codes(res.Bag, diag.SevError))
	assert.Equal(t, []string{
		"missing doc comments on field `A` of `Strict`",
		"missing doc comments on field `B` of `Strict`",
	}, messages(res.Bag))
}

func TestDefaults(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields default = "n/a"
type S struct {
	A int
	//documented:documented_fields default = fallback
	B int
	// Has docs.
	C int
}
`, false)

	table := onlyTable(t, res)
	assert.Equal(t, docs.Default, table.Items[0].Docs.Source)
	assert.Equal(t, `"n/a"`, table.Items[0].Docs.Expr.Source)
	assert.Equal(t, "fallback", table.Items[1].Docs.Expr.Source)
	assert.Equal(t, docs.Text, table.Items[2].Docs.Source)
}

func TestNonStringDefaults(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields
type S struct {
	// A.
	A int
	//documented:documented_fields default = 42
	B int
}

//documented:documented_opt default = true
type T int

//documented:docs_const default = "ok" + "!"
type U int
`, false)

	require.Equal(t, []diag.Code{diag.MalformedValue, diag.MalformedValue}, codes(res.Bag, diag.SevError))
	items := res.Bag.Items()
	assert.Equal(t, "`default` must be a string expression, found `42` of type untyped int", items[0].Message)
	pos := res.Fset.Position(items[0].Primary.Pos)
	assert.Equal(t, 7, pos.Line)
	assert.Equal(t, 43, pos.Column)
	assert.Equal(t, "`default` must be a string expression, found `true` of type untyped bool", items[1].Message)

	require.Len(t, res.Tables, 1)
	assert.Equal(t, "U", res.Tables[0].Decl.Name())
	assert.Equal(t, `"ok" + "!"`, res.Tables[0].Docs.Expr.Source)
}

func TestErrorsSurviveDiagnosticLimit(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.MaxDiagnostics = utils.Ptr(1)
	ctx := newTestContext(cfg)
	p := NewParser(ctx)
	require.NoError(t, p.ParseSource("a.go", `package p

// A.
//documented:docs
type A int

// C.
//documented:docs
type C int

//documented:documented
type B struct{}
`))
	res := NewOrchestrator(ctx).ProcessPackage(p)

	assert.True(t, res.Bag.HasErrors())
	assert.Equal(t, []diag.Code{diag.MissingDocumentation}, codes(res.Bag, diag.SevError))
	assert.Equal(t, 1, res.Bag.Omitted())
	for _, table := range res.Tables {
		assert.NotEqual(t, "B", table.Decl.Name())
	}
}

func TestGlobalDefaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Defaults = &config.Defaults{
		Trim:      utils.Ptr(true),
		RenameAll: utils.Ptr("snake_case"),
		Default:   utils.Ptr(`""`),
	}
	ctx := newTestContext(cfg)
	p := NewParser(ctx)
	require.NoError(t, p.ParseSource("a.go", `package p

//documented:documented_fields
type S struct {
	HTTPServer string
}
`))
	res := NewOrchestrator(ctx).ProcessPackage(p)

	table := onlyTable(t, res)
	assert.Equal(t, "http_server", table.Items[0].Name)
	assert.Equal(t, docs.Default, table.Items[0].Docs.Source)
}

func TestDuplicateLookupKey(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields
type S struct {
	// A.
	//documented:documented_fields rename = "x"
	A int
	// B.
	//documented:documented_fields rename = "x"
	B int
}
`, false)

	assert.Empty(t, res.Tables)
	assert.Equal(t, []diag.Code{diag.DuplicateLookupKey}, codes(res.Bag, diag.SevError))
	assert.Equal(t, []string{`members 0 and 1 both resolve to the name "x"`}, messages(res.Bag))
}

func TestDocsConst(t *testing.T) {
	res := process(t, `package p

// Widget docs.
//documented:docs_const
type Widget struct{}

// helper docs.
//documented:docs_const vis = exported
func helper() {}

// Renamed.
//documented:docs_const rename = "aboutThing", vis = exported
var thing = 1

// Pair.
//documented:docs_const
const a, b = 1, 2

//documented:docs_const default = "none"
type Bare int
`, false)

	require.False(t, res.Bag.HasErrors(), "%v", messages(res.Bag))
	var names [][]string
	for _, table := range res.Tables {
		names = append(names, table.ConstNames)
	}
	assert.Equal(t, [][]string{{"WidgetDocs"}, {"HelperDocs"}, {"AboutThing"}, {"aDocs", "bDocs"}, {"BareDocs"}}, names)
	assert.Equal(t, "Widget docs.", res.Tables[0].Docs.Text)
	assert.Equal(t, docs.Default, res.Tables[4].Docs.Source)
}

func TestDocsConstErrors(t *testing.T) {
	res := process(t, `package p

// Pair.
//documented:docs_const rename = "pairDocs"
var x, y = 1, 2

// Spaces.
//documented:docs_const rename = "not an ident"
var z = 1

//documented:docs_const
func undocumented() {}
`, false)

	assert.Empty(t, res.Tables)
	assert.Equal(t, []diag.Code{diag.StructuralMismatch, diag.MalformedValue, diag.MissingDocumentation},
		codes(res.Bag, diag.SevError))
	assert.Contains(t, messages(res.Bag), "missing doc comments on `undocumented`")
}

func TestDocumented(t *testing.T) {
	res := process(t, `package p

// Pair holds two values.
//documented:documented_opt
type Pair[K comparable, V any] struct{}

//documented:documented_opt
type Empty struct{}
`, false)

	require.False(t, res.Bag.HasErrors())
	require.Len(t, res.Tables, 2)
	assert.Equal(t, "Pair holds two values.", res.Tables[0].Docs.Text)
	assert.False(t, res.Tables[1].Docs.Present())
}

func TestVariants(t *testing.T) {
	res := process(t, `package p

// Level is a level.
//documented:documented_variants
type Level int

const (
	// Low.
	Low Level = iota
	// High.
	//documented:documented_variants trim = false
	High
	// Max is High.
	Max = High
	_
)
`, true)

	table := onlyTable(t, res)
	require.Len(t, table.Items, 2)
	assert.Equal(t, "Low", table.Items[0].Ident)
	assert.Equal(t, " High.", table.Items[1].Docs.Text)
	assert.Nil(t, table.Index)

	assert.Equal(t, []diag.Code{diag.StructuralMismatch}, codes(res.Bag, diag.SevWarning))
	assert.Equal(t, []string{"`Max` has the same value as `High` and is left out of VariantDocs"}, messages(res.Bag))
}

func TestVariantsOnStruct(t *testing.T) {
	res := process(t, `package p

//documented:documented_variants
type S struct{}
`, false)

	assert.Empty(t, res.Tables)
	assert.Equal(t, []string{"documented_variants can only be used on enums; for structs use documented_fields"}, messages(res.Bag))
}

func TestEnumFields(t *testing.T) {
	res := process(t, `package p

//documented:documented_fields rename_all = "lowercase"
type Color string

const (
	// Red.
	Red Color = "r"
	// Green.
	//documented:documented_fields rename = "verde"
	Green Color = "g"
)
`, false)

	table := onlyTable(t, res)
	assert.Equal(t, []string{"red", "verde"}, table.Index.Keys())
}

func TestStructuralMismatches(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "member without consumer",
			src: `package p

type T struct {
	// A.
	//documented:documented_fields rename = "a"
	A int
}
`,
			want: "`documented_fields` on `A` has no effect unless `T` enables `documented_fields` or `documented_fields_opt`",
		},
		{
			name: "both modes",
			src: `package p

// T.
//documented:documented
//documented:documented_opt
type T int
`,
			want: "`documented` and `documented_opt` cannot both be enabled on `T`",
		},
		{
			name: "optional form on member",
			src: `package p

//documented:documented_fields_opt
type T struct {
	//documented:documented_fields_opt
	A int
}
`,
			want: "members use `documented_fields`; the optional form is chosen on `T`",
		},
		{
			name: "fields on function",
			src: `package p

// F.
//documented:documented_fields
func F() {}
`,
			want: "`documented_fields` cannot be used on functions",
		},
		{
			name: "documented on alias",
			src: `package p

// A.
//documented:documented
type A = int
`,
			want: "`documented` cannot be used on type aliases",
		},
		{
			name: "variants on field",
			src: `package p

//documented:documented_fields
type T struct {
	// A.
	//documented:documented_variants
	A int
}
`,
			want: "`documented_variants` cannot be used on fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := process(t, tt.src, false)
			assert.Empty(t, res.Tables)
			require.Equal(t, []diag.Code{diag.StructuralMismatch}, codes(res.Bag, diag.SevError))
			assert.Equal(t, tt.want, res.Bag.Items()[0].Message)
		})
	}
}

func TestUnknownAttributesAndKeys(t *testing.T) {
	res := process(t, `package p

// A.
//documented:bogus
type A int

// B.
//documented:docs_const name = "x"
type B int

// C.
//documented:docs
type C int
`, false)

	assert.Equal(t, []diag.Code{diag.UnknownOption, diag.UnknownOption}, codes(res.Bag, diag.SevError))
	assert.Equal(t, []diag.Code{diag.UnknownOption}, codes(res.Bag, diag.SevWarning))
	msgs := messages(res.Bag)
	assert.Contains(t, msgs, "option `name` has been renamed; use `rename` instead")
	assert.Contains(t, msgs, "attribute `docs` is deprecated; use `docs_const` instead")

	require.Len(t, res.Tables, 1)
	assert.Equal(t, []string{"CDocs"}, res.Tables[0].ConstNames)
}

func TestDeclarationsAreIndependent(t *testing.T) {
	res := process(t, `package p

//documented:documented
type Bad int

// Good.
//documented:documented
type Good int
`, false)

	require.Len(t, res.Tables, 1)
	assert.Equal(t, "Good", res.Tables[0].Decl.Name())
	assert.Equal(t, []diag.Code{diag.MissingDocumentation}, codes(res.Bag, diag.SevError))
}

func TestProcessReturnsAggregatedError(t *testing.T) {
	ctx := newTestContext(nil)
	p := NewParser(ctx)
	require.NoError(t, p.ParseSource("a.go", `package p

//documented:documented_fields
type S struct {
	A int
	//documented:documented_fields vis = exported
	B int
}
`))
	decls := p.Declarations()
	require.Len(t, decls, 1)

	tables, err := NewOrchestrator(ctx).Process(decls[0])
	require.Error(t, err)
	assert.Nil(t, tables)
	assert.True(t, errors.Is(err, diag.ErrMissingDocumentation))
	assert.True(t, errors.Is(err, diag.ErrInapplicableOption))
	assert.Len(t, diag.Diagnostics(err), 2)
}
