// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Stats returns information about the graph.
func (g *DDNNF) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", g.varnum)
	res += fmt.Sprintf("Nodes:      %d\n", len(g.nodes))
	res += fmt.Sprintf("Edges:      %d", len(g.edges))
	return res
}

// Print returns a one-line description of node v.
func (g *DDNNF) Print(v int) string {
	if v < 0 || v >= len(g.nodes) {
		return fmt.Sprintf("Error (%d not a valid index)", v)
	}
	switch g.nodes[v].kind {
	case TrueLeaf:
		return "True"
	case FalseLeaf:
		return "False"
	}
	res := fmt.Sprintf("%d: %s(", v, g.nodes[v].kind)
	for i, ei := range g.nodes[v].edges {
		if i != 0 {
			res += " "
		}
		e := g.edges[ei]
		if len(e.labels) == 0 {
			res += fmt.Sprintf("%d", e.target)
			continue
		}
		res += fmt.Sprintf("%v->%d", e.labels, e.target)
	}
	return res + ")"
}

// PrintDot prints a graph-like description of the formula on the standard
// output using the DOT format.
func (g *DDNNF) PrintDot() {
	g.printDot(bufio.NewWriter(os.Stdout))
}

// FPrintDot is like PrintDot but writes to the named file, or to the
// standard output when filename is "-".
func (g *DDNNF) FPrintDot(filename string) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return g.printDot(bufio.NewWriter(out))
}

func (g *DDNNF) printDot(w *bufio.Writer) error {
	fmt.Fprintln(w, "digraph G {")
	for v := range g.nodes {
		switch g.nodes[v].kind {
		case TrueLeaf:
			fmt.Fprintf(w, "%d [shape=box, label=\"1\", style=filled, height=0.3, width=0.3];\n", v)
		case FalseLeaf:
			fmt.Fprintf(w, "%d [shape=box, label=\"0\", style=filled, height=0.3, width=0.3];\n", v)
		case AndGate:
			fmt.Fprintf(w, "%d [label=\"∧\"];\n", v)
		case OrGate:
			fmt.Fprintf(w, "%d [label=\"∨\"];\n", v)
		}
	}
	for v := range g.nodes {
		for _, ei := range g.nodes[v].edges {
			e := g.edges[ei]
			if len(e.labels) == 0 {
				fmt.Fprintf(w, "%d -> %d;\n", v, e.target)
				continue
			}
			fmt.Fprintf(w, "%d -> %d [label=\"", v, e.target)
			for i, l := range e.labels {
				if i != 0 {
					fmt.Fprint(w, " ")
				}
				fmt.Fprintf(w, "%d", l)
			}
			fmt.Fprintln(w, "\"];")
		}
	}
	fmt.Fprintln(w, "}")
	return w.Flush()
}

// WriteModel outputs a model as a DIMACS "v" line, literals in ascending
// variable order and terminated by 0.
func WriteModel(w io.Writer, model []Literal) error {
	if _, err := fmt.Fprint(w, "v"); err != nil {
		return err
	}
	for _, l := range model {
		if _, err := fmt.Fprintf(w, " %d", l); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, " 0")
	return err
}
