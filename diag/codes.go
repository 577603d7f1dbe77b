package diag

import (
	"errors"
	"fmt"
)

// Code identifies the kind of a diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// option list
	UnknownOption      Code = 1001
	DuplicateOption    Code = 1002
	InapplicableOption Code = 1003
	MalformedValue     Code = 1004
	InvalidSyntax      Code = 1005

	// documentation
	MissingDocumentation Code = 2001
	DuplicateLookupKey   Code = 2002

	// declaration shape
	StructuralMismatch Code = 3001

	// generator
	GenerateFailed Code = 4001
)

var codeNames = map[Code]string{
	UnknownCode:          "unknown",
	UnknownOption:        "unknown-option",
	DuplicateOption:      "duplicate-option",
	InapplicableOption:   "inapplicable-option",
	MalformedValue:       "malformed-value",
	InvalidSyntax:        "invalid-syntax",
	MissingDocumentation: "missing-documentation",
	DuplicateLookupKey:   "duplicate-lookup-key",
	StructuralMismatch:   "structural-mismatch",
	GenerateFailed:       "generate-failed",
}

// Sentinel errors matched with errors.Is against an *Error carrying the code.
var (
	ErrUnknownOption        = errors.New("unknown option")
	ErrDuplicateOption      = errors.New("duplicate option")
	ErrInapplicableOption   = errors.New("inapplicable option")
	ErrMalformedValue       = errors.New("malformed value")
	ErrInvalidSyntax        = errors.New("invalid syntax")
	ErrMissingDocumentation = errors.New("missing documentation")
	ErrDuplicateLookupKey   = errors.New("duplicate lookup key")
	ErrStructuralMismatch   = errors.New("structural mismatch")
	ErrGenerateFailed       = errors.New("generate failed")
)

var codeErrors = map[Code]error{
	UnknownOption:        ErrUnknownOption,
	DuplicateOption:      ErrDuplicateOption,
	InapplicableOption:   ErrInapplicableOption,
	MalformedValue:       ErrMalformedValue,
	InvalidSyntax:        ErrInvalidSyntax,
	MissingDocumentation: ErrMissingDocumentation,
	DuplicateLookupKey:   ErrDuplicateLookupKey,
	StructuralMismatch:   ErrStructuralMismatch,
	GenerateFailed:       ErrGenerateFailed,
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

// ID returns the short numeric form, e.g. "E1002".
func (c Code) ID() string {
	return fmt.Sprintf("E%04d", uint16(c))
}

// Sentinel returns the sentinel error for the code, or nil.
func (c Code) Sentinel() error {
	return codeErrors[c]
}
