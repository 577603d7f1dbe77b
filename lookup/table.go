// Package lookup compiles the name to index table behind generated field lookups.
package lookup

import (
	"github.com/pablor21/gondoc/diag"
)

// Entry is one named member at its position in declaration order.
type Entry struct {
	Index int
	Name  string
	Span  diag.Span
}

// Table maps exposed member names to their positional index. It is read-only
// once compiled.
type Table struct {
	index   map[string]int
	entries []Entry
}

// Compile builds the table. Names must be pairwise distinct; every collision
// is reported with both indices, and no table is returned.
func Compile(entries []Entry) (*Table, error) {
	t := &Table{
		index:   make(map[string]int, len(entries)),
		entries: make([]Entry, 0, len(entries)),
	}
	first := make(map[string]Entry, len(entries))

	var errs diag.Error
	for _, e := range entries {
		if prev, dup := first[e.Name]; dup {
			errs.Add(diag.Errorf(diag.DuplicateLookupKey, e.Span,
				"members %d and %d both resolve to the name %q", prev.Index, e.Index, e.Name).
				WithNote(prev.Span, "%q first used here", e.Name))
			continue
		}
		first[e.Name] = e
		t.index[e.Name] = e.Index
		t.entries = append(t.entries, e)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the index published under name.
func (t *Table) Lookup(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of named entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Map returns a copy of the name to index mapping.
func (t *Table) Map() map[string]int {
	out := make(map[string]int, len(t.index))
	for k, v := range t.index {
		out[k] = v
	}
	return out
}

// Keys returns the published names in index order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Name
	}
	return out
}
