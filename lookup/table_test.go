package lookup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/gondoc/diag"
)

func TestCompileAndLookup(t *testing.T) {
	// index 1 is an anonymous member and has no entry
	entries := []Entry{
		{Index: 0, Name: "first"},
		{Index: 2, Name: "third"},
		{Index: 3, Name: "fourth"},
	}
	table, err := Compile(entries)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	for _, e := range entries {
		i, ok := table.Lookup(e.Name)
		assert.True(t, ok, e.Name)
		assert.Equal(t, e.Index, i)
	}
	_, ok := table.Lookup("second")
	assert.False(t, ok)
	_, ok = table.Lookup("")
	assert.False(t, ok)

	assert.Equal(t, entries, table.Entries())
	assert.Equal(t, map[string]int{"first": 0, "third": 2, "fourth": 3}, table.Map())
}

func TestCompileLarge(t *testing.T) {
	var entries []Entry
	for i := 0; i < 500; i++ {
		entries = append(entries, Entry{Index: i, Name: fmt.Sprintf("field_%d", i)})
	}
	table, err := Compile(entries)
	require.NoError(t, err)
	for _, e := range entries {
		i, ok := table.Lookup(e.Name)
		require.True(t, ok)
		require.Equal(t, e.Index, i)
	}
}

func TestCompileEmpty(t *testing.T) {
	table, err := Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	_, ok := table.Lookup("x")
	assert.False(t, ok)
}

func TestCompileDuplicate(t *testing.T) {
	entries := []Entry{
		{Index: 0, Name: "x", Span: diag.Span{Pos: 10, End: 11}},
		{Index: 1, Name: "y", Span: diag.Span{Pos: 20, End: 21}},
		{Index: 2, Name: "x", Span: diag.Span{Pos: 30, End: 31}},
		{Index: 3, Name: "y", Span: diag.Span{Pos: 40, End: 41}},
	}
	table, err := Compile(entries)
	assert.Nil(t, table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrDuplicateLookupKey))

	ds := diag.Diagnostics(err)
	require.Len(t, ds, 2)
	assert.Equal(t, `members 0 and 2 both resolve to the name "x"`, ds[0].Message)
	assert.Equal(t, entries[2].Span, ds[0].Primary)
	require.Len(t, ds[0].Notes, 1)
	assert.Equal(t, entries[0].Span, ds[0].Notes[0].Span)
	assert.Equal(t, `members 1 and 3 both resolve to the name "y"`, ds[1].Message)
}
