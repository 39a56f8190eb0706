// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// WriteC2d outputs the graph in the c2d output format: a header line
// "nnf <#nodes> <#edges> <#vars>" followed by one line per node, children
// before parents. Since the c2d format carries literals as leaf nodes, each
// branch label of the graph is translated into a chain of literal leaves
// conjoined with the original child; identical leaves and gates are written
// once and shared.
//
// A disjunction can only be expressed in this format as a decision on a
// variable that is propagated by every one of its (non-false) branches, with
// both polarities present; we return an error when no such variable exists.
func WriteC2d(w io.Writer, g *DDNNF) error {
	d := &c2dwriter{
		g:        g,
		trueIdx:  -1,
		falseIdx: -1,
		posIdx:   make([]int, g.varnum),
		negIdx:   make([]int, g.varnum),
		andCache: make(map[string]int),
		orCache:  make(map[[2]int]int),
	}
	for i := range d.posIdx {
		d.posIdx[i] = -1
		d.negIdx[i] = -1
	}
	if _, err := d.writeFrom(g.root, nil); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "nnf %d %d %d\n", d.nnodes, d.nedges, g.varnum); err != nil {
		return errors.Wrap(err, "while writing the c2d header")
	}
	if _, err := io.Copy(w, &d.buf); err != nil {
		return errors.Wrap(err, "while writing the buffered content")
	}
	return nil
}

type c2dwriter struct {
	g              *DDNNF
	buf            bytes.Buffer
	nnodes, nedges int
	trueIdx        int
	falseIdx       int
	posIdx, negIdx []int
	andCache       map[string]int
	orCache        map[[2]int]int
}

func (d *c2dwriter) writeFrom(v int, propagations []Literal) (int, error) {
	nd := d.g.nodes[v]
	if (nd.kind == AndGate || nd.kind == OrGate) && len(nd.edges) == 1 {
		return d.writeSingle(nd.edges[0], propagations)
	}
	switch nd.kind {
	case AndGate:
		idx := make([]int, 0, len(nd.edges)+len(propagations))
		for _, ei := range nd.edges {
			e := d.g.edges[ei]
			n, err := d.writeFrom(e.target, e.labels)
			if err != nil {
				return 0, err
			}
			idx = append(idx, n)
		}
		for _, p := range propagations {
			idx = append(idx, d.writeLiteral(p))
		}
		return d.writeAnd(idx), nil
	case OrGate:
		live := make([]int, 0, len(nd.edges))
		for _, ei := range nd.edges {
			if d.g.nodes[d.g.edges[ei].target].kind != FalseLeaf {
				live = append(live, ei)
			}
		}
		switch len(live) {
		case 0:
			return d.writeFalse(), nil
		case 1:
			// determinism with a false branch collapses to the live one
			return d.writeSingle(live[0], propagations)
		}
		return d.writeOr(live, propagations)
	case TrueLeaf:
		switch len(propagations) {
		case 0:
			return d.writeTrue(), nil
		case 1:
			return d.writeLiteral(propagations[0]), nil
		}
		idx := make([]int, 0, len(propagations))
		for _, p := range propagations {
			idx = append(idx, d.writeLiteral(p))
		}
		return d.writeAnd(idx), nil
	}
	return d.writeFalse(), nil
}

func (d *c2dwriter) writeSingle(ei int, propagations []Literal) (int, error) {
	e := d.g.edges[ei]
	merged := make([]Literal, 0, len(propagations)+len(e.labels))
	merged = append(merged, propagations...)
	merged = append(merged, e.labels...)
	return d.writeFrom(e.target, merged)
}

func (d *c2dwriter) writeOr(children []int, propagations []Literal) (int, error) {
	dv, pos, neg, err := d.splitConflicting(children)
	if err != nil {
		return 0, err
	}
	writeChild := func(occ []int) (int, error) {
		if len(occ) == 1 {
			e := d.g.edges[occ[0]]
			return d.writeFrom(e.target, e.labels)
		}
		return d.writeOr(occ, nil)
	}
	posChild, err := writeChild(pos)
	if err != nil {
		return 0, err
	}
	negChild, err := writeChild(neg)
	if err != nil {
		return 0, err
	}
	res := d.writeOrLine(dv, negChild, posChild)
	if len(propagations) != 0 {
		idx := make([]int, 0, len(propagations)+1)
		for _, p := range propagations {
			idx = append(idx, d.writeLiteral(p))
		}
		idx = append(idx, res)
		res = d.writeAnd(idx)
	}
	return res, nil
}

// splitConflicting looks for a variable propagated by every branch of a
// disjunction with both polarities present: the decision variable of the
// node in the c2d view. It returns the variable and the branches grouped by
// the polarity they give it.
func (d *c2dwriter) splitConflicting(children []int) (int, []int, []int, error) {
	first := d.g.edges[children[0]]
	for _, l := range first.labels {
		var pos, neg []int
		if l.Pos() {
			pos = append(pos, children[0])
		} else {
			neg = append(neg, children[0])
		}
		seenInAll := true
		for _, ei := range children[1:] {
			seen := false
			for _, k := range d.g.edges[ei].labels {
				if k.Var() == l.Var() {
					seen = true
					if k.Pos() {
						pos = append(pos, ei)
					} else {
						neg = append(neg, ei)
					}
				}
			}
			if !seen {
				seenInAll = false
				break
			}
		}
		if seenInAll && len(pos) != 0 && len(neg) != 0 {
			return l.Var(), pos, neg, nil
		}
	}
	return 0, nil, nil, errors.New("cannot convert OR node as a decision node")
}

func (d *c2dwriter) writeTrue() int {
	if d.trueIdx < 0 {
		d.trueIdx = d.nnodes
		d.nnodes++
		fmt.Fprintln(&d.buf, "A 0")
	}
	return d.trueIdx
}

func (d *c2dwriter) writeFalse() int {
	if d.falseIdx < 0 {
		d.falseIdx = d.nnodes
		d.nnodes++
		fmt.Fprintln(&d.buf, "O 0 0")
	}
	return d.falseIdx
}

func (d *c2dwriter) writeLiteral(l Literal) int {
	slot := d.posIdx
	if !l.Pos() {
		slot = d.negIdx
	}
	if slot[l.Var()-1] < 0 {
		slot[l.Var()-1] = d.nnodes
		d.nnodes++
		fmt.Fprintf(&d.buf, "L %d\n", l)
	}
	return slot[l.Var()-1]
}

func (d *c2dwriter) writeAnd(idx []int) int {
	sort.Ints(idx)
	key := fmt.Sprint(idx)
	if n, ok := d.andCache[key]; ok {
		return n
	}
	d.nnodes++
	d.nedges += len(idx)
	fmt.Fprintf(&d.buf, "A %d", len(idx))
	for _, i := range idx {
		fmt.Fprintf(&d.buf, " %d", i)
	}
	fmt.Fprintln(&d.buf)
	d.andCache[key] = d.nnodes - 1
	return d.nnodes - 1
}

func (d *c2dwriter) writeOrLine(dv, child0, child1 int) int {
	key := [2]int{child0, child1}
	if child1 < child0 {
		key = [2]int{child1, child0}
	}
	if n, ok := d.orCache[key]; ok {
		return n
	}
	d.nnodes++
	d.nedges += 2
	fmt.Fprintf(&d.buf, "O %d 2 %d %d\n", dv, key[0], key[1])
	d.orCache[key] = d.nnodes - 1
	return d.nnodes - 1
}

// ReadC2d parses the c2d output format back into an edge-labeled graph. A
// literal leaf "L l" becomes a conjunction with a single edge propagating l
// towards a shared true node; "A 0" and "O 0 0" are the constant leaves; the
// root is the last declared node.
func ReadC2d(r io.Reader, options ...ReadOption) (*DDNNF, error) {
	cfg := &rdconfig{}
	for _, f := range options {
		f(cfg)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	line := 0
	var nodes []node
	var edges []edge
	varnum, declared := 0, -1
	const sentinel = -2 // patched to the shared true node once its index is known
	needTrue := false
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if declared < 0 {
			if len(fields) != 4 || fields[0] != "nnf" {
				return nil, &ParseError{Line: line, Msg: "expected header nnf <#nodes> <#edges> <#vars>"}
			}
			n, err1 := strconv.Atoi(fields[1])
			nv, err2 := strconv.Atoi(fields[3])
			if err1 != nil || err2 != nil || n < 0 || nv < 0 {
				return nil, &ParseError{Line: line, Msg: "malformed nnf header"}
			}
			declared, varnum = n, nv
			continue
		}
		switch fields[0] {
		case "L":
			if len(fields) != 2 {
				return nil, &ParseError{Line: line, Msg: "malformed literal leaf"}
			}
			k, err := strconv.Atoi(fields[1])
			if err != nil || k == 0 || Literal(k).Var() > varnum {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("expected a literal, got %q", fields[1])}
			}
			needTrue = true
			edges = append(edges, edge{target: sentinel, labels: []Literal{Literal(k)}})
			nodes = append(nodes, node{kind: AndGate, edges: []int{len(edges) - 1}})
		case "A":
			children, err := parseC2dGate(fields, 1, len(nodes))
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			if len(children) == 0 {
				nodes = append(nodes, node{kind: TrueLeaf})
				continue
			}
			nodes = append(nodes, node{kind: AndGate, edges: appendEdges(&edges, children)})
		case "O":
			children, err := parseC2dGate(fields, 2, len(nodes))
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			if len(children) == 0 {
				nodes = append(nodes, node{kind: FalseLeaf})
				continue
			}
			nodes = append(nodes, node{kind: OrGate, edges: appendEdges(&edges, children)})
		default:
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("unexpected first word %q", fields[0])}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "while reading c2d input")
	}
	if len(nodes) == 0 {
		return nil, &ParseError{Line: line, Msg: "formula is empty"}
	}
	if len(nodes) != declared {
		return nil, &ParseError{Line: line, Msg: fmt.Sprintf("header declares %d nodes, got %d", declared, len(nodes))}
	}
	root := len(nodes) - 1
	if needTrue {
		nodes = append(nodes, node{kind: TrueLeaf})
		for i := range edges {
			if edges[i].target == sentinel {
				edges[i].target = len(nodes) - 1
			}
		}
	}
	if cfg.varnum > varnum {
		varnum = cfg.varnum
	}
	return newDDNNF(varnum, root, nodes, edges), nil
}

// parseC2dGate parses the tail of an A or O line; skip is the number of
// words between the tag and the arity (the decision variable of O lines is
// ignored on input).
func parseC2dGate(fields []string, skip, nnodes int) ([]int, error) {
	if len(fields) < skip+1 {
		return nil, errors.New("missing arity")
	}
	arity, err := strconv.Atoi(fields[skip])
	if err != nil || arity < 0 {
		return nil, errors.Errorf("expected an arity, got %q", fields[skip])
	}
	if len(fields) != skip+1+arity {
		return nil, errors.Errorf("expected %d children", arity)
	}
	children := make([]int, 0, arity)
	for _, w := range fields[skip+1:] {
		c, err := strconv.Atoi(w)
		if err != nil || c < 0 || c >= nnodes {
			return nil, errors.Errorf("wrong child index %q; children must be declared before parents", w)
		}
		children = append(children, c)
	}
	return children, nil
}

func appendEdges(edges *[]edge, children []int) []int {
	res := make([]int, 0, len(children))
	for _, c := range children {
		*edges = append(*edges, edge{target: c})
		res = append(res, len(*edges)-1)
	}
	return res
}
