// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accessInstances = []struct {
	input string
	nvars int
}{
	{"f 1 0\n", 0},
	{"t 1 0\n", 3},
	{"a 1 0\nt 2 0\n1 2 1 0\n", 0},
	{"o 1 0\nt 2 0\n1 2 -1 0\n 1 2 1 0\n", 0},
	{"a 1 0\nt 2 0\n1 2 -1 0\n 1 2 -2 0\n", 0},
	{"a 1 0\no 2 0\no 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 1 0\n3 4 -2 0\n3 4 2 0\n", 0},
	{"o 1 0\na 2 0\na 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 -2 0\n3 4 1 0\n3 4 2 0\n", 0},
	{"o 1 0\no 2 0\nt 3 0\n2 3 -1 -2 0\n2 3 1 0\n1 2 0\n", 0},
	{"o 1 0\no 2 0\nt 3 0\nf 4 0\n2 3 -1 0\n2 4 1 0\n1 2 0\n", 2},
}

func parseAt(t *testing.T, i int) *DDNNF {
	t.Helper()
	var options []ReadOption
	if accessInstances[i].nvars > 0 {
		options = append(options, Nvars(accessInstances[i].nvars))
	}
	return parse(t, accessInstances[i].input, options...)
}

// The multiset of models returned by direct access over [0, count) must
// equal the multiset of enumerated models.
func TestAccessMatchesEnumeration(t *testing.T) {
	for i := range accessInstances {
		g := parseAt(t, i)
		engine := NewAccess(NewCounter(g))
		models := [][]Literal{}
		count := engine.Count()
		for k := big.NewInt(0); k.Cmp(count) < 0; k.Add(k, big.NewInt(1)) {
			m, err := engine.Model(k)
			require.NoError(t, err)
			models = append(models, m)
		}
		expected := collect(t, NewEnumerator(g))
		assert.Equal(t, sortmodels(expected), sortmodels(models), "input %q", accessInstances[i].input)
	}
}

// Same property for partial models, against compact enumeration.
func TestAccessPartialModels(t *testing.T) {
	for i := range accessInstances {
		g := parseAt(t, i)
		engine := NewAccess(NewPathCounter(g))
		models := [][]Literal{}
		count := engine.Count()
		for k := big.NewInt(0); k.Cmp(count) < 0; k.Add(k, big.NewInt(1)) {
			m, err := engine.Model(k)
			require.NoError(t, err)
			models = append(models, m)
		}
		expected := collect(t, NewCompactEnumerator(g))
		assert.Equal(t, sortmodels(expected), sortmodels(models), "input %q", accessInstances[i].input)
	}
}

func TestAccessIndexOutOfRange(t *testing.T) {
	g := parse(t, "t 1 0", Nvars(2))
	engine := NewAccess(NewCounter(g))
	_, err := engine.Model(big.NewInt(4))
	require.Error(t, err)
	assert.IsType(t, &IndexError{}, err)
	_, err = engine.Model(big.NewInt(-1))
	assert.Error(t, err)
}

// Structural order: the first branch and the first free-variable bit come
// first, with a clear bit selecting the positive polarity.
func TestAccessStructuralOrder(t *testing.T) {
	g := parse(t, "o 1 0\nt 2 0\n1 2 1 0\n1 2 -1 0\n", Nvars(2))
	engine := NewAccess(NewCounter(g))
	assert.EqualValues(t, 4, engine.Count().Int64())
	m, err := engine.Model(big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, lits(1, 2), m)
}

func TestOrderedAccessLexicographic(t *testing.T) {
	g := parse(t, "a 1 0\no 2 0\no 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 1 0\n3 4 -2 0\n3 4 2 0\n")
	engine, err := NewOrderedAccess(g, nil)
	require.NoError(t, err)
	expected := [][]Literal{lits(-1, -2), lits(-1, 2), lits(1, -2), lits(1, 2)}
	for k, want := range expected {
		m, err := engine.Model(big.NewInt(int64(k)))
		require.NoError(t, err)
		assert.Equal(t, want, m, "index %d", k)
	}
	_, err = engine.Model(big.NewInt(4))
	assert.IsType(t, &IndexError{}, err)
}

// Lexicographic direct access returns models in strictly ascending order,
// with the negative polarity before the positive one.
func TestOrderedAccessAscending(t *testing.T) {
	for i := range accessInstances {
		g := parseAt(t, i)
		engine, err := NewOrderedAccess(g, nil)
		require.NoError(t, err)
		count := engine.Count()
		var prev []Literal
		for k := big.NewInt(0); k.Cmp(count) < 0; k.Add(k, big.NewInt(1)) {
			m, err := engine.Model(k)
			require.NoError(t, err)
			if prev != nil {
				assert.True(t, lexLess(prev, m), "models %v and %v out of order", prev, m)
			}
			prev = m
		}
	}
}

// lexLess compares two total models over the same variables, negative
// polarity first.
func lexLess(a, b []Literal) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < 0 && b[i] > 0
		}
	}
	return false
}

// Two equivalent formulas with different structures must list their models
// in the same order.
func TestOrderedAccessEquivalentFormulas(t *testing.T) {
	variants := []string{
		"o 1 0\na 2 0\na 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 -2 0\n3 4 1 3 0\n",
		"o 1 0\na 2 0\na 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -2 -1 0\n3 4 3 1 0\n",
		"o 1 0\na 2 0\na 3 0\nt 4 0\n1 2 0\n1 3 0\n3 4 -1 -2 0\n2 4 1 3 0\n",
		"o 1 0\na 2 0\na 3 0\nt 4 0\n1 2 0\n1 3 0\n3 4 -2 -1 0\n2 4 3 1 0\n",
	}
	var reference [][]Literal
	for _, input := range variants {
		g := parse(t, input)
		engine, err := NewOrderedAccess(g, nil)
		require.NoError(t, err)
		models := [][]Literal{}
		count := engine.Count()
		for k := big.NewInt(0); k.Cmp(count) < 0; k.Add(k, big.NewInt(1)) {
			m, err := engine.Model(k)
			require.NoError(t, err)
			models = append(models, m)
		}
		if reference == nil {
			reference = models
			continue
		}
		assert.Equal(t, reference, models, "input %q", input)
	}
}

func TestOrderedAccessBadOrder(t *testing.T) {
	g := parse(t, "t 1 0", Nvars(2))
	_, err := NewOrderedAccess(g, lits(1))
	assert.Error(t, err)
	_, err = NewOrderedAccess(g, lits(1, 3))
	assert.Error(t, err)
	_, err = NewOrderedAccess(g, lits(1, 1))
	assert.Error(t, err)
	_, err = NewOrderedAccess(g, lits(2, -1))
	assert.NoError(t, err)
}
