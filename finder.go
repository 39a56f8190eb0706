// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import "sort"

// Finder answers satisfiability queries over a Decision-DNNF, possibly under
// assumption literals. It walks the graph depth-first and stops at the first
// model. Results are not memoized, so a subgraph shared by several branches
// may be walked more than once in a single query.
type Finder struct {
	g *DDNNF
}

// NewFinder returns a model finder for g.
func NewFinder(g *DDNNF) *Finder {
	return &Finder{g: g}
}

// Find searches for a model compatible with the given assumptions. The
// model is total: variables not constrained by the graph are completed with
// the assumed polarity when there is one, and negatively otherwise. Literals
// are returned in ascending variable order.
//
// We return ErrNoModel when no model satisfies the assumptions, and a
// LitError when an assumption refers to a variable outside the graph.
func (f *Finder) Find(assumptions ...Literal) ([]Literal, error) {
	m, err := lits2map(f.g.varnum, assumptions)
	if err != nil {
		return nil, err
	}
	model := make([]Literal, 0, f.g.varnum)
	if !f.findNode(f.g.root, &model, m) {
		return nil, ErrNoModel
	}
	assigned := make([]bool, f.g.varnum+1)
	for _, l := range model {
		assigned[l.Var()] = true
	}
	for v := 1; v <= f.g.varnum; v++ {
		if !assigned[v] {
			if m[v] == 1 {
				model = append(model, Literal(v))
			} else {
				model = append(model, Literal(-v))
			}
		}
	}
	sort.Slice(model, func(i, j int) bool { return model[i].Var() < model[j].Var() })
	return model, nil
}

func (f *Finder) findNode(v int, model *[]Literal, m []int8) bool {
	switch f.g.nodes[v].kind {
	case TrueLeaf:
		return true
	case FalseLeaf:
		return false
	case AndGate:
		for _, ei := range f.g.nodes[v].edges {
			if !f.findEdge(ei, model, m) {
				return false
			}
		}
		return true
	case OrGate:
		for _, ei := range f.g.nodes[v].edges {
			if f.findEdge(ei, model, m) {
				return true
			}
		}
		return false
	}
	return false
}

func (f *Finder) findEdge(ei int, model *[]Literal, m []int8) bool {
	e := f.g.edges[ei]
	for _, l := range e.labels {
		if opposed(m, l) {
			return false
		}
	}
	old := len(*model)
	*model = append(*model, e.labels...)
	if f.findNode(e.target, model, m) {
		return true
	}
	*model = (*model)[:old]
	return false
}

// satisfiableFrom reports whether the subgraph rooted at v has a model
// compatible with the polarity map m. This is the shared-model test used by
// the determinism checker: a counting query that returns as soon as any
// model is found.
func (g *DDNNF) satisfiableFrom(v int, m []int8) bool {
	switch g.nodes[v].kind {
	case TrueLeaf:
		return true
	case FalseLeaf:
		return false
	case AndGate:
		for _, ei := range g.nodes[v].edges {
			e := g.edges[ei]
			if contradicts(m, e.labels) || !g.satisfiableFrom(e.target, m) {
				return false
			}
		}
		return true
	case OrGate:
		for _, ei := range g.nodes[v].edges {
			e := g.edges[ei]
			if !contradicts(m, e.labels) && g.satisfiableFrom(e.target, m) {
				return true
			}
		}
		return false
	}
	return false
}
