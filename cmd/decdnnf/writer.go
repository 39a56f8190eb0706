// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"bufio"
	"io"
	"math/big"
	"strconv"

	"github.com/dalzilio/ddnnf"
)

// modelWriter prints models as DIMACS "v" lines. The line is built once as a
// byte pattern with one sign slot per variable, so that writing a model only
// patches the slots; in compact mode an unassigned (free) variable is shown
// as "*<var>", standing for both polarities.
type modelWriter struct {
	pattern     []byte
	slots       []int
	buf         *bufio.Writer
	compact     bool
	nEnumerated big.Int
	nModels     big.Int
}

func newModelWriter(w io.Writer, nvars int, compact bool) *modelWriter {
	mw := &modelWriter{
		buf:     bufio.NewWriterSize(w, 128*1024),
		compact: compact,
		slots:   make([]int, nvars+1),
	}
	mw.pattern = append(mw.pattern, 'v')
	for v := 1; v <= nvars; v++ {
		mw.pattern = append(mw.pattern, ' ')
		mw.slots[v] = len(mw.pattern)
		mw.pattern = append(mw.pattern, ' ')
		mw.pattern = append(mw.pattern, strconv.Itoa(v)...)
	}
	mw.pattern = append(mw.pattern, " 0\n"...)
	return mw
}

var one = big.NewInt(1)

func (mw *modelWriter) write(model []ddnnf.Literal) {
	mw.nEnumerated.Add(&mw.nEnumerated, one)
	stars := len(mw.slots) - 1
	if mw.compact {
		for v := 1; v < len(mw.slots); v++ {
			mw.pattern[mw.slots[v]] = '*'
		}
	}
	for _, l := range model {
		stars--
		if l.Pos() {
			mw.pattern[mw.slots[l.Var()]] = ' '
		} else {
			mw.pattern[mw.slots[l.Var()]] = '-'
		}
	}
	if mw.compact {
		covered := new(big.Int).Lsh(one, uint(stars))
		mw.nModels.Add(&mw.nModels, covered)
	} else {
		mw.nModels.Add(&mw.nModels, one)
	}
	mw.buf.Write(mw.pattern)
}

func (mw *modelWriter) flush() {
	mw.buf.Flush()
}
