// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import "math/big"

// Counter computes the number of satisfying assignments of a Decision-DNNF.
// The count of every node is computed once, at creation time, using
// arbitrary-precision arithmetic; the per-node results are shared by the
// direct-access engine and the sampler, so a Counter should be reused across
// queries over the same graph.
//
// A Counter created with NewPathCounter counts disjoint partial models (the
// blocks emitted by compact enumeration) instead of total assignments: free
// variables do not contribute their power-of-two factor.
type Counter struct {
	g      *DDNNF
	counts []*big.Int
	paths  bool
}

// NewCounter returns a counter for the total assignments of g.
func NewCounter(g *DDNNF) *Counter {
	return newCounter(g, false)
}

// NewPathCounter returns a counter for the disjoint partial models of g.
func NewPathCounter(g *DDNNF) *Counter {
	return newCounter(g, true)
}

func newCounter(g *DDNNF, paths bool) *Counter {
	c := &Counter{g: g, counts: make([]*big.Int, len(g.nodes)), paths: paths}
	c.compute(nil, c.counts)
	return c
}

// Count returns the number of models of the whole formula: the count of the
// root times a factor of two for each variable that appears nowhere in the
// graph (except when counting partial models, where free variables are left
// unassigned).
func (c *Counter) Count() *big.Int {
	if c.paths {
		return new(big.Int).Set(c.counts[c.g.root])
	}
	return new(big.Int).Lsh(c.counts[c.g.root], uint(len(c.g.rootFree())))
}

// CountAssuming returns the number of models consistent with the given
// assumption literals. The result is computed with a private per-call cache,
// since assumptions change the count of every node; an assumption over a
// variable outside the range of the graph is rejected with a LitError.
func (c *Counter) CountAssuming(assumptions ...Literal) (*big.Int, error) {
	if len(assumptions) == 0 {
		return c.Count(), nil
	}
	m, err := lits2map(c.g.varnum, assumptions)
	if err != nil {
		return nil, err
	}
	counts := make([]*big.Int, len(c.g.nodes))
	c.compute(m, counts)
	res := new(big.Int).Set(counts[c.g.root])
	if !c.paths {
		res.Lsh(res, uint(unassumed(c.g.rootFree(), m)))
	}
	return res, nil
}

// compute fills counts with the per-node model counts, following the
// recurrence of the counting algorithm in a post-order traversal driven by
// an explicit work stack. When the polarity map m is non-nil, a branch whose
// labels contradict it contributes zero models, and assumed free variables
// lose their power-of-two factor.
func (c *Counter) compute(m []int8, counts []*big.Int) {
	g := c.g
	type frame struct {
		v        int
		expanded bool
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{g.root, false})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if counts[f.v] != nil {
			continue
		}
		if !f.expanded {
			stack = append(stack, frame{f.v, true})
			for _, ei := range g.nodes[f.v].edges {
				if t := g.edges[ei].target; counts[t] == nil {
					stack = append(stack, frame{t, false})
				}
			}
			continue
		}
		switch g.nodes[f.v].kind {
		case TrueLeaf:
			counts[f.v] = big.NewInt(1)
		case FalseLeaf:
			counts[f.v] = big.NewInt(0)
		case AndGate:
			res := big.NewInt(1)
			for _, ei := range g.nodes[f.v].edges {
				e := g.edges[ei]
				if contradicts(m, e.labels) {
					res = big.NewInt(0)
					break
				}
				res.Mul(res, counts[e.target])
			}
			counts[f.v] = res
		case OrGate:
			res := big.NewInt(0)
			for i, ei := range g.nodes[f.v].edges {
				e := g.edges[ei]
				if contradicts(m, e.labels) {
					continue
				}
				w := new(big.Int).Set(counts[e.target])
				if !c.paths {
					w.Lsh(w, uint(unassumed(g.orfree[f.v][i], m)))
				}
				res.Add(res, w)
			}
			counts[f.v] = res
		}
	}
}

// contradicts reports whether one of the labels is opposed to the polarity
// map m. A nil map contradicts nothing.
func contradicts(m []int8, labels []Literal) bool {
	if m == nil {
		return false
	}
	for _, l := range labels {
		if opposed(m, l) {
			return true
		}
	}
	return false
}

// unassumed returns the number of variables of vars left unconstrained by
// the polarity map m. Only these contribute a free-variable factor of two.
func unassumed(vars []int, m []int8) int {
	if m == nil {
		return len(vars)
	}
	n := 0
	for _, v := range vars {
		if m[v] == 0 {
			n++
		}
	}
	return n
}
