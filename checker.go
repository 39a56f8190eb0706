// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Check verifies the two structural invariants of a Decision-DNNF: the
// decomposability of every conjunction (children have pairwise disjoint
// variable sets, propagated literals included) and the determinism of every
// disjunction (branches are pairwise mutually unsatisfiable).
//
// Determinism is first checked structurally: two branches are disjoint
// whenever they disagree on the polarity of some propagated variable, which
// is how compilers encode decisions. When the structural test is
// inconclusive we fall back to a semantic test: the labels of both branches
// are conjoined as assumptions and each branch is asked for a compatible
// model, with the query returning as soon as one is found.
//
// The first violation is reported as a StructureError carrying the
// identifier of the offending node. Checking is optional; the result of a
// query over a graph that does not pass it is undefined.
func Check(g *DDNNF) error {
	for v := range g.nodes {
		if g.vars[v] == nil {
			// not reachable from the root; nothing to check
			continue
		}
		switch g.nodes[v].kind {
		case AndGate:
			if err := checkAnd(g, v); err != nil {
				return err
			}
		case OrGate:
			if err := checkOr(g, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkAnd(g *DDNNF, v int) error {
	sets := make([]*bitset.BitSet, len(g.nodes[v].edges))
	for i, ei := range g.nodes[v].edges {
		e := g.edges[ei]
		s := g.vars[e.target].Clone()
		for _, l := range e.labels {
			s.Set(uint(l.Var() - 1))
		}
		sets[i] = s
	}
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if sets[i].IntersectionCardinality(sets[j]) != 0 {
				return &StructureError{Node: v, Msg: "AND children share variables"}
			}
		}
	}
	return nil
}

func checkOr(g *DDNNF, v int) error {
	edges := g.nodes[v].edges
	for i := 0; i < len(edges); i++ {
		ei := g.edges[edges[i]]
		if g.nodes[ei.target].kind == FalseLeaf {
			continue
		}
		for j := i + 1; j < len(edges); j++ {
			ej := g.edges[edges[j]]
			if g.nodes[ej.target].kind == FalseLeaf {
				continue
			}
			if contradictory(ei.labels, ej.labels) {
				continue
			}
			if sharedModel(g, ei, ej) {
				return &StructureError{Node: v, Msg: fmt.Sprintf("OR branches %d and %d are not mutually unsatisfiable", i, j)}
			}
		}
	}
	return nil
}

// contradictory reports whether the two label lists disagree on the polarity
// of some variable, which makes the branches structurally disjoint.
func contradictory(p0, p1 []Literal) bool {
	for _, l := range p0 {
		for _, k := range p1 {
			if l == k.Neg() {
				return true
			}
		}
	}
	return false
}

// sharedModel is the semantic fallback: it conjoins the labels of both
// branches and asks each child for a model compatible with them.
func sharedModel(g *DDNNF, ei, ej edge) bool {
	m := make([]int8, g.varnum+1)
	for _, l := range append(append([]Literal{}, ei.labels...), ej.labels...) {
		if l.Pos() {
			m[l.Var()] = 1
		} else {
			m[l.Var()] = -1
		}
	}
	return g.satisfiableFrom(ei.target, m) && g.satisfiableFrom(ej.target, m)
}
