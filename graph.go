// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Kind is the tag of a node in a Decision-DNNF. A node is either one of the
// two constant leaves, a decomposable conjunction (AndGate) or a
// deterministic disjunction (OrGate).
type Kind uint8

const (
	// TrueLeaf is the constant true node.
	TrueLeaf Kind = iota
	// FalseLeaf is the constant false node.
	FalseLeaf
	// AndGate is a decomposable conjunction node.
	AndGate
	// OrGate is a deterministic disjunction node.
	OrGate
)

func (k Kind) String() string {
	switch k {
	case TrueLeaf:
		return "t"
	case FalseLeaf:
		return "f"
	case AndGate:
		return "a"
	case OrGate:
		return "o"
	}
	return "?"
}

// node is an element of the arena. Leaves have a nil edge list.
type node struct {
	kind  Kind
	edges []int
}

// edge targets a node and propagates a (possibly empty) list of literals,
// kept sorted by variable index.
type edge struct {
	target int
	labels []Literal
}

// DDNNF is a Decision-DNNF formula: a rooted DAG stored in an arena of nodes
// indexed by dense identifiers. Shared subgraphs appear once. The iteration
// order over the branches of a node is the insertion order of the parser that
// built the graph; it is part of the observable contract since it fixes the
// structural order used by direct access and sampling.
//
// A DDNNF is immutable once built, except for Varnum which can be raised.
type DDNNF struct {
	nodes  []node
	edges  []edge
	root   int
	varnum int
	vars   []*bitset.BitSet // variables below each node, labels included
	orfree [][][]int        // for each Or node, free variables of each branch
}

// newDDNNF wraps raw parser data into a graph and computes the variable-set
// index in a single post-order pass.
func newDDNNF(varnum, root int, nodes []node, edges []edge) *DDNNF {
	g := &DDNNF{nodes: nodes, edges: edges, root: root, varnum: varnum}
	g.buildIndex()
	return g
}

// Size returns the number of nodes in the arena.
func (g *DDNNF) Size() int {
	return len(g.nodes)
}

// Edgecount returns the number of edges in the arena.
func (g *DDNNF) Edgecount() int {
	return len(g.edges)
}

// Root returns the identifier of the root node.
func (g *DDNNF) Root() int {
	return g.root
}

// Varnum returns the number of variables of the formula.
func (g *DDNNF) Varnum() int {
	return g.varnum
}

// SetVarnum raises the number of variables of the formula. It may be called
// more than once, but only to increase the number of variables.
func (g *DDNNF) SetVarnum(num int) error {
	if num < g.varnum {
		return fmt.Errorf("cannot reduce the number of variables (%d < %d)", num, g.varnum)
	}
	g.varnum = num
	return nil
}

// Kind returns the tag of node v.
func (g *DDNNF) Kind(v int) Kind {
	return g.nodes[v].kind
}

// Arity returns the number of outgoing branches of node v; it is zero for
// leaves.
func (g *DDNNF) Arity(v int) int {
	return len(g.nodes[v].edges)
}

// Branch returns the i-th outgoing branch of node v as a list of propagated
// literals and the identifier of the child node. The labels slice must not be
// mutated.
func (g *DDNNF) Branch(v, i int) ([]Literal, int) {
	e := g.edges[g.nodes[v].edges[i]]
	return e.labels, e.target
}

// buildIndex computes vars(v) for every node reachable from the root, plus
// the per-branch free variables of disjunction nodes. The traversal uses an
// explicit work stack so that deep graphs cannot overflow the native stack.
func (g *DDNNF) buildIndex() {
	g.vars = make([]*bitset.BitSet, len(g.nodes))
	g.orfree = make([][][]int, len(g.nodes))
	type frame struct {
		v        int
		expanded bool
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{g.root, false})
	entered := make([]bool, len(g.nodes))
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if g.vars[f.v] != nil {
			continue
		}
		if !f.expanded {
			if entered[f.v] {
				// f.v is an ancestor on the current path: the graph has a
				// cycle (possible when parsing with DoNotCheck)
				continue
			}
			entered[f.v] = true
			stack = append(stack, frame{f.v, true})
			for _, ei := range g.nodes[f.v].edges {
				if t := g.edges[ei].target; g.vars[t] == nil {
					stack = append(stack, frame{t, false})
				}
			}
			continue
		}
		u := bitset.New(uint(g.varnum))
		for _, ei := range g.nodes[f.v].edges {
			e := g.edges[ei]
			if tv := g.vars[e.target]; tv != nil {
				u.InPlaceUnion(tv)
			}
			for _, l := range e.labels {
				u.Set(uint(l.Var() - 1))
			}
		}
		g.vars[f.v] = u
		if g.nodes[f.v].kind == OrGate {
			fr := make([][]int, len(g.nodes[f.v].edges))
			for i, ei := range g.nodes[f.v].edges {
				e := g.edges[ei]
				in := bitset.New(uint(g.varnum))
				if tv := g.vars[e.target]; tv != nil {
					in = tv.Clone()
				}
				for _, l := range e.labels {
					in.Set(uint(l.Var() - 1))
				}
				fr[i] = setminus(u, in)
			}
			g.orfree[f.v] = fr
		}
	}
}

// setminus returns the variables of u not in in, in ascending order.
func setminus(u, in *bitset.BitSet) []int {
	d := u.Difference(in)
	res := make([]int, 0, d.Count())
	for i, ok := d.NextSet(0); ok; i, ok = d.NextSet(i + 1) {
		res = append(res, int(i)+1)
	}
	return res
}

// rootFree returns the variables in [1, Varnum] that appear nowhere in the
// graph, in ascending order. They are unconstrained and contribute a factor
// of two each to the model count.
func (g *DDNNF) rootFree() []int {
	rv := g.vars[g.root]
	res := []int{}
	for v := 1; v <= g.varnum; v++ {
		if !rv.Test(uint(v - 1)) {
			res = append(res, v)
		}
	}
	return res
}
