package diag

import (
	"errors"
	"strings"
)

// Error carries one or more diagnostics as a Go error.
type Error struct {
	Diagnostics []Diagnostic
}

// NewError wraps the given diagnostics.
func NewError(ds ...Diagnostic) *Error {
	return &Error{Diagnostics: ds}
}

// Add appends a diagnostic.
func (e *Error) Add(ds ...Diagnostic) {
	e.Diagnostics = append(e.Diagnostics, ds...)
}

// Len returns the number of diagnostics held.
func (e *Error) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Diagnostics)
}

// HasErrors reports whether any held diagnostic is error-level.
func (e *Error) HasErrors() bool {
	if e == nil {
		return false
	}
	for _, d := range e.Diagnostics {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Err returns e as an error, or nil when it holds no error-level diagnostic.
func (e *Error) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "no diagnostics"
	case 1:
		return e.Diagnostics[0].Message
	}
	msgs := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the code sentinels so errors.Is(err, ErrDuplicateOption) works.
func (e *Error) Unwrap() []error {
	seen := make(map[Code]bool)
	var out []error
	for _, d := range e.Diagnostics {
		if seen[d.Code] {
			continue
		}
		seen[d.Code] = true
		if s := d.Code.Sentinel(); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Combine merges two errors. Diagnostics of both sides are kept in order.
// A nil side yields the other one unchanged.
func Combine(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	var da, db *Error
	if errors.As(a, &da) && errors.As(b, &db) {
		merged := make([]Diagnostic, 0, len(da.Diagnostics)+len(db.Diagnostics))
		merged = append(merged, da.Diagnostics...)
		merged = append(merged, db.Diagnostics...)
		return &Error{Diagnostics: merged}
	}
	return errors.Join(a, b)
}

// Diagnostics extracts the diagnostics held by err, if any.
func Diagnostics(err error) []Diagnostic {
	var de *Error
	if errors.As(err, &de) {
		return de.Diagnostics
	}
	return nil
}
