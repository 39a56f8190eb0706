// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import "errors"

// Enumerator iterates through the models of a Decision-DNNF. The graph is
// re-expanded as a decision tree: shared subgraphs are visited once per
// occurrence on a path, so enumeration takes time proportional to the number
// of emissions, not to the size of the DAG alone.
//
// Models are passed one by one to a callback, and enumeration stops as soon
// as the callback returns a non-nil error, which is then returned to the
// caller. This is the cooperative cancellation point of the enumerator.
type Enumerator struct {
	g       *DDNNF
	compact bool
	val     []int8
}

// NewEnumerator returns an enumerator for the total models of g. Branches of
// a disjunction are iterated in insertion order, the children of a
// conjunction form a Cartesian product with the last child varying fastest,
// and free variables are expanded in both polarities, negative first, in
// ascending variable order. The number of emissions equals the model count.
func NewEnumerator(g *DDNNF) *Enumerator {
	return &Enumerator{g: g}
}

// NewCompactEnumerator returns an enumerator for the disjoint partial models
// of g: free variables are left unassigned, and the emitted partial
// assignments have extensions that partition the model set. This compact
// mode trades resolution for size, with one emission per path instead of
// 2^k per free-variable block.
func NewCompactEnumerator(g *DDNNF) *Enumerator {
	return &Enumerator{g: g, compact: true}
}

// Do runs the enumeration, calling f on every model. The slice passed to f
// is freshly allocated for each emission, with literals in ascending
// variable order; partial models only list the assigned variables.
func (e *Enumerator) Do(f func([]Literal) error) error {
	e.val = make([]int8, e.g.varnum+1)
	emit := func() error { return f(model(e.val, !e.compact)) }
	walk := func() error { return e.walk(e.g.root, emit) }
	if e.compact {
		return walk()
	}
	return e.freeblock(e.g.rootFree(), 0, walk)
}

// freeblock expands the given free variables over both polarities, calling
// cont for every combination.
func (e *Enumerator) freeblock(vars []int, i int, cont func() error) error {
	if i == len(vars) {
		return cont()
	}
	e.val[vars[i]] = -1
	if err := e.freeblock(vars, i+1, cont); err != nil {
		return err
	}
	e.val[vars[i]] = 1
	return e.freeblock(vars, i+1, cont)
}

func (e *Enumerator) walk(v int, cont func() error) error {
	switch e.g.nodes[v].kind {
	case TrueLeaf:
		return cont()
	case FalseLeaf:
		return nil
	case AndGate:
		return e.walkAnd(v, 0, cont)
	case OrGate:
		for i, ei := range e.g.nodes[v].edges {
			eg := e.g.edges[ei]
			assign(e.val, eg.labels)
			free := e.g.orfree[v][i]
			if e.compact {
				for _, fv := range free {
					e.val[fv] = 0
				}
				if err := e.walk(eg.target, cont); err != nil {
					return err
				}
				continue
			}
			branch := func() error { return e.walk(eg.target, cont) }
			if err := e.freeblock(free, 0, branch); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// walkAnd chains the children of a conjunction: each model of child i
// continues into the enumeration of child i+1, which realizes the Cartesian
// product without materializing it.
func (e *Enumerator) walkAnd(v, i int, cont func() error) error {
	if i == len(e.g.nodes[v].edges) {
		return cont()
	}
	eg := e.g.edges[e.g.nodes[v].edges[i]]
	assign(e.val, eg.labels)
	return e.walk(eg.target, func() error { return e.walkAnd(v, i+1, cont) })
}

// EnumerateDecisionTree enumerates the total models of g by splitting on the
// variables in ascending order, using the model finder under assumptions to
// prune unsatisfiable subtrees. This alternative strategy does not rely on
// the free-variable index and emits models in the lexicographic order
// induced by the successive model discoveries.
func EnumerateDecisionTree(g *DDNNF, f func([]Literal) error) error {
	finder := NewFinder(g)
	last, err := finder.Find()
	if errors.Is(err, ErrNoModel) {
		return nil
	}
	if err != nil {
		return err
	}
	if g.varnum == 0 {
		return f([]Literal{})
	}
	type item struct {
		shortcut bool
		lit      Literal
	}
	stack := make([]item, 0, 2*g.varnum)
	// push the two polarities of the variable at depth i, guided by the
	// last model found: its own literal is explored first as a shortcut
	// that needs no satisfiability query
	push := func(m []Literal, i int) {
		stack = append(stack, item{false, m[i].Neg()}, item{true, m[i]})
	}
	push(last, 0)
	assumptions := make([]Literal, 0, g.varnum)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		assumptions = assumptions[:it.lit.Var()-1]
		assumptions = append(assumptions, it.lit)
		if it.shortcut {
			if len(assumptions) == g.varnum {
				if err := f(append([]Literal(nil), last...)); err != nil {
					return err
				}
			} else {
				push(last, len(assumptions))
			}
			continue
		}
		m, err := finder.Find(assumptions...)
		if errors.Is(err, ErrNoModel) {
			continue
		}
		if err != nil {
			return err
		}
		last = m
		if len(assumptions) == g.varnum {
			if err := f(append([]Literal(nil), last...)); err != nil {
				return err
			}
		} else {
			push(last, len(assumptions))
		}
	}
	return nil
}
