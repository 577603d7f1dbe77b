// Package diag holds located diagnostics produced while resolving documentation directives.
package diag

import (
	"fmt"
	"go/token"
)

// Span is a half-open range of source positions.
type Span struct {
	Pos token.Pos
	End token.Pos
}

// SpanOf returns the span covering [pos, pos+n).
func SpanOf(pos token.Pos, n int) Span {
	return Span{Pos: pos, End: pos + token.Pos(n)}
}

// IsValid reports whether the span points into a file.
func (s Span) IsValid() bool {
	return s.Pos.IsValid()
}

type Note struct {
	Span Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Span
	Notes    []Note
}

// Errorf builds an error-level diagnostic.
func Errorf(code Code, at Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Primary:  at,
	}
}

// Warnf builds a warning-level diagnostic.
func Warnf(code Code, at Span, format string, args ...any) Diagnostic {
	d := Errorf(code, at, format, args...)
	d.Severity = SevWarning
	return d
}

// WithNote returns a copy of d with a secondary location attached.
func (d Diagnostic) WithNote(at Span, format string, args ...any) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: at, Msg: fmt.Sprintf(format, args...)})
	return d
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}
