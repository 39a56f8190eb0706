// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import "strconv"

// Literal is a propositional literal in the DIMACS convention: a nonzero
// integer whose absolute value identifies a variable and whose sign gives the
// polarity. Variables are numbered from 1.
type Literal int

// Var returns the index of the variable of l.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Pos reports whether l is a positive literal.
func (l Literal) Pos() bool {
	return l > 0
}

// Neg returns the literal over the same variable with the opposite polarity.
func (l Literal) Neg() Literal {
	return -l
}

func (l Literal) String() string {
	return strconv.Itoa(int(l))
}

// lits2map builds a polarity map from a list of assumption literals: the
// entry for a variable is 0 when the variable is unconstrained, and the sign
// of the assumed literal otherwise. We return an error when a literal refers
// to a variable outside [1, varnum].
func lits2map(varnum int, assumptions []Literal) ([]int8, error) {
	m := make([]int8, varnum+1)
	for _, l := range assumptions {
		v := l.Var()
		if v == 0 || v > varnum {
			return nil, &LitError{Lit: l, Varnum: varnum}
		}
		if l.Pos() {
			m[v] = 1
		} else {
			m[v] = -1
		}
	}
	return m, nil
}

// opposed reports whether l contradicts the polarity map m.
func opposed(m []int8, l Literal) bool {
	if l.Pos() {
		return m[l.Var()] == -1
	}
	return m[l.Var()] == 1
}
