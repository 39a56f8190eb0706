// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findModel(t *testing.T, g *DDNNF, assumptions ...Literal) ([]Literal, error) {
	t.Helper()
	return NewFinder(g).Find(assumptions...)
}

func TestFindUnsat(t *testing.T) {
	g := parse(t, "f 1 0")
	_, err := findModel(t, g)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestFindEmpty(t *testing.T) {
	g := parse(t, "t 1 0")
	m, err := findModel(t, g)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestFindFreeVar(t *testing.T) {
	g := parse(t, "t 1 0", Nvars(1))
	m, err := findModel(t, g)
	require.NoError(t, err)
	assert.Equal(t, lits(-1), m)
	m, err = findModel(t, g, Literal(1))
	require.NoError(t, err)
	assert.Equal(t, lits(1), m)
	m, err = findModel(t, g, Literal(-1))
	require.NoError(t, err)
	assert.Equal(t, lits(-1), m)
}

func TestFindAnd(t *testing.T) {
	g := parse(t, "a 1 0\nt 2 0\n1 2 1 0\n1 2 2 0\n")
	for _, assumptions := range [][]Literal{nil, lits(1), lits(2), lits(1, 2)} {
		m, err := findModel(t, g, assumptions...)
		require.NoError(t, err)
		assert.Equal(t, lits(1, 2), m)
	}
	for _, assumptions := range [][]Literal{lits(-1), lits(-2), lits(-1, 2), lits(1, -2), lits(-1, -2)} {
		_, err := findModel(t, g, assumptions...)
		assert.ErrorIs(t, err, ErrNoModel, "assumptions %v", assumptions)
	}
}

func TestFindOr(t *testing.T) {
	g := parse(t, "o 1 0\nt 2 0\n1 2 -1 -2 0\n1 2 1 2 0\n")
	for _, assumptions := range [][]Literal{nil, lits(1), lits(2), lits(-1), lits(-2)} {
		_, err := findModel(t, g, assumptions...)
		assert.NoError(t, err, "assumptions %v", assumptions)
	}
	m, err := findModel(t, g, lits(1, 2)...)
	require.NoError(t, err)
	assert.Equal(t, lits(1, 2), m)
	m, err = findModel(t, g, lits(-1, -2)...)
	require.NoError(t, err)
	assert.Equal(t, lits(-1, -2), m)
	for _, assumptions := range [][]Literal{lits(-1, 2), lits(1, -2)} {
		_, err := findModel(t, g, assumptions...)
		assert.ErrorIs(t, err, ErrNoModel, "assumptions %v", assumptions)
	}
}

func TestFindAndOr(t *testing.T) {
	g := parse(t, "a 1 0\no 2 0\no 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 1 0\n3 4 -2 0\n3 4 2 0\n")
	for _, assumptions := range [][]Literal{lits(1, 2), lits(-1, 2), lits(1, -2), lits(-1, -2)} {
		m, err := findModel(t, g, assumptions...)
		require.NoError(t, err)
		assert.Equal(t, assumptions, m)
	}
}

func TestFindOutOfRange(t *testing.T) {
	g := parse(t, "t 1 0")
	_, err := findModel(t, g, Literal(-1))
	require.Error(t, err)
	assert.IsType(t, &LitError{}, err)
}
