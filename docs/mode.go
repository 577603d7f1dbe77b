package docs

import (
	"errors"

	"github.com/pablor21/gondoc/annotations"
)

// ErrMissingDocumentation is returned by Strict when there is neither text nor a default.
var ErrMissingDocumentation = errors.New("missing doc comments")

// Source tells where a Value came from.
type Source uint8

const (
	Absent Source = iota
	Text
	Default
)

func (s Source) String() string {
	switch s {
	case Text:
		return "text"
	case Default:
		return "default"
	}
	return "absent"
}

// Value is documentation after default substitution.
type Value struct {
	Source Source
	// Text is set when Source is Text.
	Text string
	// Expr is set when Source is Default. It is emitted verbatim.
	Expr annotations.Expression
}

// Present reports whether the value carries documentation.
func (v Value) Present() bool {
	return v.Source != Absent
}

// Mode decides what happens to an undocumented item.
type Mode interface {
	Substitute(text string, ok bool, def *annotations.Expression) (Value, error)
	// Optional reports whether absent documentation is acceptable.
	Optional() bool
}

type strict struct{}
type optional struct{}

var (
	// Strict requires documentation or a default.
	Strict Mode = strict{}
	// Optional yields an absent Value instead of failing.
	Optional Mode = optional{}
)

func substitute(text string, ok bool, def *annotations.Expression) (Value, bool) {
	if ok {
		return Value{Source: Text, Text: text}, true
	}
	if def != nil {
		return Value{Source: Default, Expr: *def}, true
	}
	return Value{}, false
}

func (strict) Substitute(text string, ok bool, def *annotations.Expression) (Value, error) {
	if v, found := substitute(text, ok, def); found {
		return v, nil
	}
	return Value{}, ErrMissingDocumentation
}

func (strict) Optional() bool { return false }

func (optional) Substitute(text string, ok bool, def *annotations.Expression) (Value, error) {
	v, _ := substitute(text, ok, def)
	return v, nil
}

func (optional) Optional() bool { return true }

// ModeFor returns Optional when optional is set, Strict otherwise.
func ModeFor(optional bool) Mode {
	if optional {
		return Optional
	}
	return Strict
}
