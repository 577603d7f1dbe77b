// Package documented is the runtime support imported by code generated by gondoc.
package documented

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchField is returned when no member is published under the requested name.
	ErrNoSuchField = errors.New("no such field")
	// ErrNoDocComments is returned when the member exists but carries no documentation.
	ErrNoDocComments = errors.New("no doc comments")
)

// FieldError reports a failed lookup for Name.
type FieldError struct {
	Name string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Option is a piece of documentation that may be absent.
type Option struct {
	Value string
	Valid bool
}

// Some returns a present Option.
func Some(s string) Option {
	return Option{Value: s, Valid: true}
}

// None returns an absent Option.
func None() Option {
	return Option{}
}

// Get returns the value and whether it is present.
func (o Option) Get() (string, bool) {
	return o.Value, o.Valid
}

// Lookup returns the documentation of the member published under name.
func Lookup(docs []string, index map[string]int, name string) (string, error) {
	i, ok := index[name]
	if !ok || i < 0 || i >= len(docs) {
		return "", &FieldError{Name: name, Err: ErrNoSuchField}
	}
	return docs[i], nil
}

// LookupOpt is Lookup for optional documentation. An existing member without
// documentation yields ErrNoDocComments.
func LookupOpt(docs []Option, index map[string]int, name string) (string, error) {
	i, ok := index[name]
	if !ok || i < 0 || i >= len(docs) {
		return "", &FieldError{Name: name, Err: ErrNoSuchField}
	}
	if !docs[i].Valid {
		return "", &FieldError{Name: name, Err: ErrNoDocComments}
	}
	return docs[i].Value, nil
}

// FieldComment returns the documentation of the member published under name.
//
// Deprecated: use Lookup.
func FieldComment(docs []string, index map[string]int, name string) (string, error) {
	return Lookup(docs, index, name)
}
