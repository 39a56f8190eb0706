// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse is a test helper that reads a d4 formatted graph from a string.
func parse(t *testing.T, input string, options ...ReadOption) *DDNNF {
	t.Helper()
	g, err := ReadD4(strings.NewReader(input), options...)
	require.NoError(t, err)
	return g
}

// sortmodels normalizes a list of models for comparison.
func sortmodels(models [][]Literal) [][]Literal {
	for _, m := range models {
		sort.Slice(m, func(i, j int) bool { return m[i].Var() < m[j].Var() })
	}
	sort.Slice(models, func(i, j int) bool {
		a, b := models[i], models[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return models
}

func lits(ks ...int) []Literal {
	res := make([]Literal, len(ks))
	for i, k := range ks {
		res[i] = Literal(k)
	}
	return res
}

func TestReadD4Errors(t *testing.T) {
	var d4errorTests = []struct {
		input    string
		expected string
	}{
		{"n 1 0\n", `unexpected first word "n"`},
		{"a 0 0\n", "wrong node index; expected 1, got 0"},
		{"a 1\n", "expected 0 as third word"},
		{"a 1 1\n", "expected 0 as third word"},
		{"a 1 0 0\n", "unexpected content after 0"},
		{"a 1 0\nt 2 0\nf 3 0\n1 1 0", "source and target index must be different"},
		{"a 1 0\nt 2 0\nf 3 0\n4 1 0", "wrong source index; max is 3, got 4"},
		{"a 1 0\nt 2 0\nf 3 0\n1 a 0", "while parsing the target index"},
		{"a 1 0\nt 2 0\nf 3 0\n1 4 0", "wrong target index; max is 3, got 4"},
		{"a 1 0\nt 2 0\nf 3 0\n1 2", "missing final 0"},
		{"a 1 0\nt 2 0\nf 3 0\n1 2 0 0", "unexpected content after 0"},
		{"a 1 0\nt 2 0\nf 3 0\n1 2 a 0", `expected a literal, got "a"`},
		{"a 1 0\nt 2 0\n1 2 1 1 0", "a variable is propagated multiple times"},
		{"f 1 0\nt 2 0\n", "no path to the node with index 2"},
		{"a 1 0\na 2 0\n1 2 0\n2 1 0\n", "cycle detected"},
		{"a 1 0\nt 2 0\n2 1 0\n2 1 0\n", "cannot add an edge from a leaf node"},
		{"a 1 0\nf 2 0\n2 1 0\n2 1 0\n", "cannot add an edge from a leaf node"},
		{"", "formula is empty"},
	}
	for _, tt := range d4errorTests {
		_, err := ReadD4(strings.NewReader(tt.input))
		require.Error(t, err, "input %q", tt.input)
		assert.Contains(t, err.Error(), tt.expected, "input %q", tt.input)
	}
}

func TestReadD4DoNotCheck(t *testing.T) {
	_, err := ReadD4(strings.NewReader("f 1 0\nt 2 0\n"), DoNotCheck())
	assert.NoError(t, err)
	_, err = ReadD4(strings.NewReader("a 1 0\na 2 0\n1 2 0\n2 1 0\n"), DoNotCheck())
	assert.NoError(t, err)
}

func TestReadD4Ok(t *testing.T) {
	g := parse(t, "a 1 0\no 2 0\no 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 1 0\n3 4 -2 0\n3 4 2 0\n")
	assert.Equal(t, 2, g.Varnum())
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 6, g.Edgecount())
	assert.Equal(t, AndGate, g.Kind(g.Root()))
	assert.Equal(t, 2, g.Arity(g.Root()))
}

func TestReadD4Clause(t *testing.T) {
	g := parse(t, `
	o 1 0
	o 2 0
	t 3 0
	2 3 -1 -2 0
	2 3 1 0
	1 2 0`)
	assert.Equal(t, 2, g.Varnum())
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 3, g.Edgecount())
}

func TestReadD4True(t *testing.T) {
	g := parse(t, "t 1 0")
	assert.Equal(t, 0, g.Varnum())
	assert.Equal(t, 1, g.Size())
	assert.Equal(t, 0, g.Edgecount())
	assert.Equal(t, TrueLeaf, g.Kind(g.Root()))
}

func TestSetVarnum(t *testing.T) {
	g := parse(t, "t 1 0")
	require.NoError(t, g.SetVarnum(3))
	assert.Equal(t, 3, g.Varnum())
	assert.Error(t, g.SetVarnum(2))
	assert.Equal(t, 3, g.Varnum())
}

func TestWriteD4RoundTrip(t *testing.T) {
	for _, input := range []string{
		"t 1 0\n",
		"f 1 0\n",
		"a 1 0\nt 2 0\n1 2 1 2 0\n",
		"o 1 0\nt 2 0\n1 2 -1 0\n1 2 1 2 0\n",
		"a 1 0\no 2 0\no 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 1 0\n3 4 -2 0\n3 4 2 0\n",
	} {
		g := parse(t, input)
		var buf bytes.Buffer
		require.NoError(t, WriteD4(&buf, g))
		h, err := ReadD4(&buf)
		require.NoError(t, err)
		assert.Equal(t, g.Size(), h.Size())
		assert.Equal(t, g.Varnum(), h.Varnum())
		assert.Zero(t, NewCounter(g).Count().Cmp(NewCounter(h).Count()), "input %q", input)
	}
}
