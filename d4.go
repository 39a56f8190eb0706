// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// rdconfig is used to store the values of the different parameters of the
// readers.
type rdconfig struct {
	nocheck bool
	varnum  int
}

// ReadOption is a configuration option for the readers, see DoNotCheck and
// Nvars.
type ReadOption func(*rdconfig)

// DoNotCheck is a configuration option (function). Used as a parameter in
// ReadD4 it disables the connectivity and acyclicity checks performed after
// parsing. Queries over a graph that would not pass these checks may produce
// undefined answers.
func DoNotCheck() ReadOption {
	return func(c *rdconfig) {
		c.nocheck = true
	}
}

// Nvars is a configuration option (function). Used as a parameter in ReadD4
// it raises the number of variables of the resulting graph, to account for
// variables of the problem that do not appear in the compiled formula. The
// option is ignored if the graph already mentions a higher variable index.
func Nvars(num int) ReadOption {
	return func(c *rdconfig) {
		c.varnum = num
	}
}

// ReadD4 parses the output format of the d4 compiler. The format is line
// oriented: a line of the form "t 3 0" (resp. "f", "a", "o") declares the
// true leaf (resp. false leaf, conjunction, disjunction) with index 3, and a
// line of the form "1 3 -2 4 0" declares an edge from node 1 to node 3
// propagating the literals -2 and 4. Node indices must be declared in
// ascending order starting at 1, and the root is the node with index 1.
//
// By default we check that the graph has a single root and no cycle; this
// can be disabled with the DoNotCheck option. The decomposability and
// determinism invariants are not verified by the reader, see function Check.
func ReadD4(r io.Reader, options ...ReadOption) (*DDNNF, error) {
	cfg := &rdconfig{}
	for _, f := range options {
		f(cfg)
	}
	var nodes []node
	var edges []edge
	varnum := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "t", "f", "a", "o":
			n, err := parseD4Node(fields)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			if n != len(nodes)+1 {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("wrong node index; expected %d, got %d", len(nodes)+1, n)}
			}
			nodes = append(nodes, node{kind: d4kinds[fields[0]]})
		default:
			e, src, err := parseD4Edge(fields, len(nodes))
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			for _, l := range e.labels {
				if v := l.Var(); v > varnum {
					varnum = v
				}
			}
			if nodes[src-1].kind == TrueLeaf || nodes[src-1].kind == FalseLeaf {
				return nil, &ParseError{Line: line, Msg: "cannot add an edge from a leaf node"}
			}
			edges = append(edges, e)
			nodes[src-1].edges = append(nodes[src-1].edges, len(edges)-1)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "while reading d4 input")
	}
	if len(nodes) == 0 {
		return nil, &ParseError{Line: line, Msg: "formula is empty"}
	}
	if !cfg.nocheck {
		if err := checkConnectivity(nodes, edges); err != nil {
			return nil, err
		}
	}
	if cfg.varnum > varnum {
		varnum = cfg.varnum
	}
	return newDDNNF(varnum, 0, nodes, edges), nil
}

var d4kinds = map[string]Kind{"t": TrueLeaf, "f": FalseLeaf, "a": AndGate, "o": OrGate}

func parseD4Node(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, errors.New("missing node index")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, errors.Wrap(err, "while parsing the node index")
	}
	if len(fields) < 3 || fields[2] != "0" {
		return 0, errors.New("expected 0 as third word")
	}
	if len(fields) > 3 {
		return 0, errors.New("unexpected content after 0")
	}
	return n, nil
}

func parseD4Edge(fields []string, nnodes int) (edge, int, error) {
	src, err := strconv.Atoi(fields[0])
	if err != nil || src <= 0 {
		return edge{}, 0, errors.Errorf("unexpected first word %q", fields[0])
	}
	if len(fields) < 2 {
		return edge{}, 0, errors.New("missing target index")
	}
	dst, err := strconv.Atoi(fields[1])
	if err != nil {
		return edge{}, 0, errors.Wrap(err, "while parsing the target index")
	}
	if src > nnodes {
		return edge{}, 0, errors.Errorf("wrong source index; max is %d, got %d", nnodes, src)
	}
	if dst > nnodes {
		return edge{}, 0, errors.Errorf("wrong target index; max is %d, got %d", nnodes, dst)
	}
	if src == dst {
		return edge{}, 0, errors.New("source and target index must be different")
	}
	var labels []Literal
	gotzero := false
	for _, w := range fields[2:] {
		if gotzero {
			return edge{}, 0, errors.New("unexpected content after 0")
		}
		if w == "0" {
			gotzero = true
			continue
		}
		k, err := strconv.Atoi(w)
		if err != nil || k == 0 {
			return edge{}, 0, errors.Errorf("expected a literal, got %q", w)
		}
		labels = append(labels, Literal(k))
	}
	if !gotzero {
		return edge{}, 0, errors.New("missing final 0")
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Var() < labels[j].Var() })
	for i := 1; i < len(labels); i++ {
		if labels[i].Var() == labels[i-1].Var() {
			return edge{}, 0, errors.New("a variable is propagated multiple times")
		}
	}
	return edge{target: dst - 1, labels: labels}, src, nil
}

// checkConnectivity verifies that every declared node is reachable from the
// root and that the graph is acyclic. The traversal uses an explicit stack.
func checkConnectivity(nodes []node, edges []edge) error {
	const (
		unseen = iota
		onpath
		done
	)
	state := make([]uint8, len(nodes))
	type cframe struct{ v, i int }
	stack := make([]cframe, 0, 64)
	stack = append(stack, cframe{0, 0})
	state[0] = onpath
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.i < len(nodes[f.v].edges) {
			t := edges[nodes[f.v].edges[f.i]].target
			f.i++
			switch state[t] {
			case onpath:
				return errors.New("cycle detected")
			case unseen:
				state[t] = onpath
				stack = append(stack, cframe{t, 0})
			}
			continue
		}
		state[f.v] = done
		stack = stack[:len(stack)-1]
	}
	for v, s := range state {
		if s == unseen {
			return errors.Errorf("no path to the node with index %d", v+1)
		}
	}
	return nil
}

// WriteD4 outputs the graph in the d4 format, in a form that ReadD4 accepts:
// all the node lines come first, with the root given index 1, followed by
// the edge lines.
func WriteD4(w io.Writer, g *DDNNF) error {
	buf := bufio.NewWriter(w)
	order := make([]int, 0, len(g.nodes))
	order = append(order, g.root)
	for v := range g.nodes {
		if v != g.root {
			order = append(order, v)
		}
	}
	id := make([]int, len(g.nodes))
	for i, v := range order {
		id[v] = i + 1
	}
	for _, v := range order {
		fmt.Fprintf(buf, "%s %d 0\n", g.nodes[v].kind, id[v])
	}
	for _, v := range order {
		for _, ei := range g.nodes[v].edges {
			e := g.edges[ei]
			fmt.Fprintf(buf, "%d %d", id[v], id[e.target])
			for _, l := range e.labels {
				fmt.Fprintf(buf, " %d", l)
			}
			fmt.Fprintln(buf, " 0")
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.Wrap(err, "while writing d4 output")
	}
	return nil
}
