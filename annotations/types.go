// Package annotations parses documentation directives and their option lists.
//
// A directive is a line comment of the form
//
//	//documented:<attribute> key = value, key = value
//
// placed in the doc comment of a declaration or of one of its members.
package annotations

import (
	"fmt"
	"strings"

	"github.com/pablor21/gondoc/diag"
)

// OptionKind is the discriminant of an option value.
type OptionKind uint8

const (
	KindVis OptionKind = iota + 1
	KindRename
	KindRenameAll
	KindDefault
	KindTrim
)

var kindNames = map[OptionKind]string{
	KindVis:       "vis",
	KindRename:    "rename",
	KindRenameAll: "rename_all",
	KindDefault:   "default",
	KindTrim:      "trim",
}

func (k OptionKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("OptionKind(%d)", uint8(k))
}

// ParseKind maps an option key to its kind.
func ParseKind(key string) (OptionKind, bool) {
	for k, name := range kindNames {
		if name == key {
			return k, true
		}
	}
	return 0, false
}

// KeySet is the set of option keys a consumer recognizes, in display order.
type KeySet []OptionKind

// AllKeys recognizes every option key.
var AllKeys = KeySet{KindVis, KindRename, KindRenameAll, KindDefault, KindTrim}

// Contains reports whether k is in the set.
func (s KeySet) Contains(k OptionKind) bool {
	for _, x := range s {
		if x == k {
			return true
		}
	}
	return false
}

func (s KeySet) String() string {
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = "`" + k.String() + "`"
	}
	return strings.Join(names, ", ")
}

// Value is the payload of an option. Each implementation belongs to exactly one kind.
type Value interface {
	Kind() OptionKind
	String() string
}

// Option is one parsed `key = value` pair.
type Option struct {
	Value Value
	// Span covers the key token.
	Span diag.Span
	// ValueSpan covers the value tokens.
	ValueSpan diag.Span
}

// Kind returns the discriminant of the option's value.
func (o Option) Kind() OptionKind {
	return o.Value.Kind()
}

func (o Option) String() string {
	return o.Kind().String() + " = " + o.Value.String()
}

// Visibility is the exportedness forced onto a generated identifier.
type Visibility uint8

const (
	VisExported Visibility = iota + 1
	VisUnexported
)

func (Visibility) Kind() OptionKind { return KindVis }

func (v Visibility) String() string {
	switch v {
	case VisExported:
		return "exported"
	case VisUnexported:
		return "unexported"
	}
	return "invalid"
}

// ParseVisibility parses a visibility descriptor.
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "exported":
		return VisExported, true
	case "unexported":
		return VisUnexported, true
	}
	return 0, false
}

// Rename is a literal replacement name.
type Rename string

func (Rename) Kind() OptionKind { return KindRename }
func (r Rename) String() string { return fmt.Sprintf("%q", string(r)) }

// Case is a naming convention applied by rename_all.
type Case uint8

const (
	CaseLower Case = iota + 1
	CaseUpper
	CasePascal
	CaseCamel
	CaseSnake
	CaseScreamingSnake
	CaseKebab
	CaseScreamingKebab
)

// CaseNames lists the accepted rename_all values in declaration order.
var CaseNames = []string{
	"lowercase",
	"UPPERCASE",
	"PascalCase",
	"camelCase",
	"snake_case",
	"SCREAMING_SNAKE_CASE",
	"kebab-case",
	"SCREAMING-KEBAB-CASE",
}

func (Case) Kind() OptionKind { return KindRenameAll }

func (c Case) String() string {
	if c < CaseLower || int(c) > len(CaseNames) {
		return "invalid"
	}
	return CaseNames[c-1]
}

// ParseCase parses a case convention name. Matching is exact.
func ParseCase(s string) (Case, bool) {
	for i, name := range CaseNames {
		if name == s {
			return Case(i + 1), true
		}
	}
	return 0, false
}

// Expression is the source text of a Go constant expression used as default documentation.
type Expression struct {
	Source string
}

func (Expression) Kind() OptionKind { return KindDefault }
func (e Expression) String() string { return e.Source }

// Trim toggles per-line whitespace trimming.
type Trim bool

func (Trim) Kind() OptionKind { return KindTrim }

func (t Trim) String() string {
	if t {
		return "true"
	}
	return "false"
}

// renamedKeys maps removed option keys to their replacement.
var renamedKeys = map[string]string{
	"name": "rename",
}

// Replacement returns the current key for a removed one.
func Replacement(key string) (string, bool) {
	r, ok := renamedKeys[key]
	return r, ok
}
