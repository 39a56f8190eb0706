// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Binary encoding of a graph: a flat, length-prefixed sequence of big-endian
// 64-bit unsigned integers, except for the one-byte node tags. The layout is
//
//	varnum root
//	#nodes { tag [#branches edgeindex*] }*
//	#edges { target #labels literal* }*
//
// where a literal l is encoded as (Var(l)-1)<<1, with the low bit set for
// the negative polarity. The encoding round-trips losslessly.
const (
	andByte   = 0x00
	orByte    = 0x01
	trueByte  = 0x02
	falseByte = 0x03
)

// WriteBinary outputs the graph in the binary format.
func WriteBinary(w io.Writer, g *DDNNF) error {
	buf := bufio.NewWriter(w)
	writeNum(buf, uint64(g.varnum))
	writeNum(buf, uint64(g.root))
	writeNum(buf, uint64(len(g.nodes)))
	for _, n := range g.nodes {
		switch n.kind {
		case AndGate:
			buf.WriteByte(andByte)
			writeNums(buf, n.edges)
		case OrGate:
			buf.WriteByte(orByte)
			writeNums(buf, n.edges)
		case TrueLeaf:
			buf.WriteByte(trueByte)
		case FalseLeaf:
			buf.WriteByte(falseByte)
		}
	}
	writeNum(buf, uint64(len(g.edges)))
	for _, e := range g.edges {
		writeNum(buf, uint64(e.target))
		writeNum(buf, uint64(len(e.labels)))
		for _, l := range e.labels {
			u := uint64(l.Var()-1) << 1
			if !l.Pos() {
				u |= 1
			}
			writeNum(buf, u)
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.Wrap(err, "while writing binary output")
	}
	return nil
}

// ReadBinary parses a graph written by WriteBinary.
func ReadBinary(r io.Reader, options ...ReadOption) (*DDNNF, error) {
	cfg := &rdconfig{}
	for _, f := range options {
		f(cfg)
	}
	buf := bufio.NewReader(r)
	varnum, err := readNum(buf)
	if err != nil {
		return nil, err
	}
	root, err := readNum(buf)
	if err != nil {
		return nil, err
	}
	nnodes, err := readNum(buf)
	if err != nil {
		return nil, err
	}
	nodes := make([]node, 0, nnodes)
	for i := uint64(0); i < nnodes; i++ {
		tag, err := buf.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "while reading a node tag")
		}
		switch tag {
		case andByte, orByte:
			es, err := readNums(buf)
			if err != nil {
				return nil, err
			}
			k := AndGate
			if tag == orByte {
				k = OrGate
			}
			nodes = append(nodes, node{kind: k, edges: es})
		case trueByte:
			nodes = append(nodes, node{kind: TrueLeaf})
		case falseByte:
			nodes = append(nodes, node{kind: FalseLeaf})
		default:
			return nil, errors.Errorf("unknown node code 0x%02x", tag)
		}
	}
	nedges, err := readNum(buf)
	if err != nil {
		return nil, err
	}
	var edges []edge
	if nedges > 0 {
		edges = make([]edge, 0, nedges)
	}
	for i := uint64(0); i < nedges; i++ {
		target, err := readNum(buf)
		if err != nil {
			return nil, err
		}
		if target >= nnodes {
			return nil, errors.Errorf("wrong target index %d", target)
		}
		nlabels, err := readNum(buf)
		if err != nil {
			return nil, err
		}
		var labels []Literal
		for j := uint64(0); j < nlabels; j++ {
			u, err := readNum(buf)
			if err != nil {
				return nil, err
			}
			l := Literal(u>>1 + 1)
			if u&1 == 1 {
				l = l.Neg()
			}
			labels = append(labels, l)
		}
		edges = append(edges, edge{target: int(target), labels: labels})
	}
	if root >= nnodes {
		return nil, errors.Errorf("wrong root index %d", root)
	}
	for _, n := range nodes {
		for _, ei := range n.edges {
			if ei >= len(edges) {
				return nil, errors.Errorf("wrong edge index %d", ei)
			}
		}
	}
	if int(varnum) < cfg.varnum {
		varnum = uint64(cfg.varnum)
	}
	return newDDNNF(int(varnum), int(root), nodes, edges), nil
}

func writeNum(buf *bufio.Writer, n uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	buf.Write(b[:])
}

func writeNums(buf *bufio.Writer, ns []int) {
	writeNum(buf, uint64(len(ns)))
	for _, n := range ns {
		writeNum(buf, uint64(n))
	}
}

func readNum(buf *bufio.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(buf, b[:]); err != nil {
		return 0, errors.Wrap(err, "while reading a number")
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readNums(buf *bufio.Reader) ([]int, error) {
	n, err := readNum(buf)
	if err != nil || n == 0 {
		return nil, err
	}
	res := make([]int, 0, n)
	for i := uint64(0); i < n; i++ {
		k, err := readNum(buf)
		if err != nil {
			return nil, err
		}
		res = append(res, int(k))
	}
	return res, nil
}
