package types

import (
	"go/constant"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/diag"
)

type Visibility string

const (
	VisibilityExported   Visibility = "exported"
	VisibilityUnexported Visibility = "unexported"
)

// determineVisibility returns the visibility of a name following Go's export rule
func determineVisibility(name string) Visibility {
	if token.IsExported(name) {
		return VisibilityExported
	}
	return VisibilityUnexported
}

// Ident is a declared name and where it appears.
type Ident struct {
	Name string
	Pos  token.Pos
}

func (i Ident) Span() diag.Span {
	return diag.SpanOf(i.Pos, len(i.Name))
}

// Declaration is a top-level declaration that may carry directives.
type Declaration struct {
	// Names has one entry except for const and var specs such as `a, b = 1, 2`.
	Names      []Ident
	Placement  annotations.Placement
	Visibility Visibility
	// TypeParams are the type parameter names of a generic type.
	TypeParams []string
	// Alias is set for `type A = B`.
	Alias bool
	// Enum names the enum type every name of a const spec belongs to.
	Enum       string
	Fragments  []string
	Directives []annotations.Directive
	// Members are struct fields or enum constants in declaration order.
	Members []*Member
	File    string

	// basic is set when the underlying type is known to be a basic type.
	basic bool
}

func (d *Declaration) Name() string {
	if len(d.Names) == 0 {
		return ""
	}
	return d.Names[0].Name
}

func (d *Declaration) Pos() token.Pos {
	if len(d.Names) == 0 {
		return token.NoPos
	}
	return d.Names[0].Pos
}

// NameSpan covers the first declared name.
func (d *Declaration) NameSpan() diag.Span {
	if len(d.Names) == 0 {
		return diag.Span{}
	}
	return d.Names[0].Span()
}

func (d *Declaration) IsEnum() bool {
	return d.Placement == annotations.PlacementEnum
}

// MemberPlacement is the placement of the declaration's members.
func (d *Declaration) MemberPlacement() annotations.Placement {
	if d.IsEnum() {
		return annotations.PlacementEnumValue
	}
	return annotations.PlacementField
}

// Receiver is the receiver type expression for methods on the declared type,
// e.g. "Pair[K, V]" for a generic type.
func (d *Declaration) Receiver() string {
	if len(d.TypeParams) == 0 {
		return d.Name()
	}
	return d.Name() + "[" + strings.Join(d.TypeParams, ", ") + "]"
}

// Member is a struct field or enum constant.
type Member struct {
	// Name is the Go name. Embedded fields are named by their type, blank
	// members keep "_".
	Name       string
	Embedded   bool
	Placement  annotations.Placement
	Pos        token.Pos
	Fragments  []string
	Directives []annotations.Directive
	// Value is the constant value of an enum member when type information
	// was available.
	Value constant.Value
}

// Anonymous reports whether the member has no usable name.
func (m *Member) Anonymous() bool {
	return m.Name == "_" || m.Name == ""
}

// LookupName is the name used before renaming, empty for anonymous members.
func (m *Member) LookupName() string {
	if m.Anonymous() {
		return ""
	}
	return m.Name
}

func (m *Member) NameSpan() diag.Span {
	n := len(m.Name)
	if n == 0 {
		n = 1
	}
	return diag.SpanOf(m.Pos, n)
}

// withFirstLetter forces the case of the first letter of name.
func withFirstLetter(name string, upper bool) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	if upper {
		r = unicode.ToUpper(r)
	} else {
		r = unicode.ToLower(r)
	}
	return string(r) + name[size:]
}

// ApplyVisibility rewrites name so that it has the requested visibility.
func ApplyVisibility(name string, vis annotations.Visibility) string {
	return withFirstLetter(name, vis == annotations.VisExported)
}
