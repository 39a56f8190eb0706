// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

// Access returns the k-th model of a formula, for the complete order on
// models induced by the structure of the graph: branches of a disjunction
// are ranked in insertion order and free-variable blocks are read off the
// low bits of the residual index, a set bit selecting the negative polarity.
// No model before the k-th is ever materialized.
//
// An Access built over a path counter returns the k-th disjoint partial
// model instead, with free variables eluded.
type Access struct {
	c *Counter
}

// NewAccess returns a direct-access engine over the precomputed counts of c.
func NewAccess(c *Counter) *Access {
	return &Access{c: c}
}

// Count returns the number of models the engine indexes over.
func (a *Access) Count() *big.Int {
	return a.c.Count()
}

// Model returns the model with (zero-based) index k. We return an IndexError
// when k is not in the interval [0, Count()).
func (a *Access) Model(k *big.Int) ([]Literal, error) {
	total := a.c.Count()
	if k.Sign() < 0 || k.Cmp(total) >= 0 {
		return nil, &IndexError{Index: new(big.Int).Set(k), Count: total}
	}
	g := a.c.g
	val := make([]int8, g.varnum+1)
	r := new(big.Int).Set(k)
	if !a.c.paths {
		peelFree(val, g.rootFree(), r)
	}
	type frame struct {
		v int
		r *big.Int
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{g.root, r})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch g.nodes[f.v].kind {
		case TrueLeaf, FalseLeaf:
		case AndGate:
			for _, ei := range g.nodes[f.v].edges {
				e := g.edges[ei]
				assign(val, e.labels)
				q, rem := new(big.Int), new(big.Int)
				q.DivMod(f.r, a.c.counts[e.target], rem)
				stack = append(stack, frame{e.target, rem})
				f.r = q
			}
		case OrGate:
			for i, ei := range g.nodes[f.v].edges {
				e := g.edges[ei]
				free := g.orfree[f.v][i]
				span := new(big.Int).Set(a.c.counts[e.target])
				if !a.c.paths {
					span.Lsh(span, uint(len(free)))
				}
				if f.r.Cmp(span) < 0 {
					if !a.c.paths {
						peelFree(val, free, f.r)
					}
					assign(val, e.labels)
					stack = append(stack, frame{e.target, f.r})
					break
				}
				f.r.Sub(f.r, span)
			}
		}
	}
	return model(val, !a.c.paths), nil
}

// peelFree reads one polarity bit per free variable off the low bits of r,
// then shifts them out. A set bit selects the negative literal.
func peelFree(val []int8, vars []int, r *big.Int) {
	for i, v := range vars {
		if r.Bit(i) == 1 {
			val[v] = -1
		} else {
			val[v] = 1
		}
	}
	r.Rsh(r, uint(len(vars)))
}

func assign(val []int8, labels []Literal) {
	for _, l := range labels {
		if l.Pos() {
			val[l.Var()] = 1
		} else {
			val[l.Var()] = -1
		}
	}
}

// model turns a polarity array into a list of literals in ascending variable
// order. When full is set every variable is expected to be assigned.
func model(val []int8, full bool) []Literal {
	res := make([]Literal, 0, len(val)-1)
	for v := 1; v < len(val); v++ {
		switch {
		case val[v] > 0:
			res = append(res, Literal(v))
		case val[v] < 0:
			res = append(res, Literal(-v))
		case full:
			// an unassigned variable here would be a structural defect;
			// complete with the negative polarity rather than panic
			res = append(res, Literal(-v))
		}
	}
	return res
}

// OrderedAccess returns the k-th model for a total order on models given as
// a preference list of literals, one per variable: models assigning the
// listed literal come before those assigning its negation, with earlier
// variables weighing more. The order of the models is the same for two
// equivalent formulas, even when they have a different structure.
//
// The default order (nil preference list) is ascending variable index with
// the negative polarity first, which yields the usual lexicographic order on
// models.
type OrderedAccess struct {
	g     *DDNNF
	c     *Counter
	order []Literal
	total *big.Int
}

// NewOrderedAccess returns a lexicographic direct-access engine. The order,
// when not nil, must contain exactly one literal per variable of the graph.
func NewOrderedAccess(g *DDNNF, order []Literal) (*OrderedAccess, error) {
	if order == nil {
		order = make([]Literal, g.varnum)
		for v := 1; v <= g.varnum; v++ {
			order[v-1] = Literal(-v)
		}
	}
	seen := make([]bool, g.varnum+1)
	for _, l := range order {
		v := l.Var()
		if v == 0 || v > g.varnum || seen[v] {
			return nil, errors.New("order must involve all variables exactly once")
		}
		seen[v] = true
	}
	if len(order) != g.varnum {
		return nil, errors.New("order must involve all variables exactly once")
	}
	c := NewCounter(g)
	return &OrderedAccess{g: g, c: c, order: order, total: c.Count()}, nil
}

// Count returns the number of models of the formula.
func (a *OrderedAccess) Count() *big.Int {
	return new(big.Int).Set(a.total)
}

// Model returns the model with (zero-based) index k in the declared order.
// Each step fixes one variable at the cost of one counting query under the
// assumptions accumulated so far.
func (a *OrderedAccess) Model(k *big.Int) ([]Literal, error) {
	if k.Sign() < 0 || k.Cmp(a.total) >= 0 {
		return nil, &IndexError{Index: new(big.Int).Set(k), Count: a.Count()}
	}
	n := new(big.Int).Set(k)
	assumed := make([]Literal, 0, a.g.varnum)
	for len(assumed) < a.g.varnum {
		lit := a.order[len(assumed)]
		assumed = append(assumed, lit)
		cnt, err := a.c.CountAssuming(assumed...)
		if err != nil {
			return nil, err
		}
		if n.Cmp(cnt) >= 0 {
			assumed[len(assumed)-1] = lit.Neg()
			n.Sub(n, cnt)
		}
	}
	res := make([]Literal, len(assumed))
	copy(res, assumed)
	sort.Slice(res, func(i, j int) bool { return res[i].Var() < res[j].Var() })
	return res, nil
}
