// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/dalzilio/ddnnf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// inputFlags holds the flags common to all the subcommands that load a
// Decision-DNNF from a file.
type inputFlags struct {
	input      string
	format     string
	nvars      int
	doNotCheck bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input file containing the Decision-DNNF formula")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&f.format, "format", "d4", "input format: d4, c2d or binary")
	cmd.Flags().IntVar(&f.nvars, "n-vars", 0, "sets the number of variables (must be higher or equal to the highest variable index)")
	cmd.Flags().BoolVar(&f.doNotCheck, "do-not-check", false, "skip the structural checks (queries over an unchecked graph may produce undefined answers)")
}

// read loads the input graph and, unless --do-not-check was given, verifies
// its structural invariants.
func (f *inputFlags) read() (*ddnnf.DDNNF, error) {
	file, err := os.Open(f.input)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening file %q", f.input)
	}
	defer file.Close()
	logrus.Infof("reading input file %s", f.input)
	g, err := readGraph(file, f)
	if err != nil {
		return nil, errors.Wrap(err, "while parsing the input Decision-DNNF")
	}
	if !f.doNotCheck {
		if err := ddnnf.Check(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func readGraph(file *os.File, f *inputFlags) (*ddnnf.DDNNF, error) {
	options := []ddnnf.ReadOption{}
	if f.doNotCheck {
		options = append(options, ddnnf.DoNotCheck())
	}
	if f.nvars > 0 {
		options = append(options, ddnnf.Nvars(f.nvars))
	}
	switch f.format {
	case "d4":
		return ddnnf.ReadD4(file, options...)
	case "c2d":
		return ddnnf.ReadC2d(file, options...)
	case "binary":
		return ddnnf.ReadBinary(file, options...)
	}
	return nil, errors.Errorf("unknown input format %q", f.format)
}

// parseAssumptions parses a string of blank separated DIMACS literals.
func parseAssumptions(s string) ([]ddnnf.Literal, error) {
	var res []ddnnf.Literal
	for _, w := range strings.Fields(s) {
		k, err := strconv.Atoi(w)
		if err != nil || k == 0 {
			return nil, errors.Errorf("expected a literal, got %q", w)
		}
		res = append(res, ddnnf.Literal(k))
	}
	return res, nil
}

// assumeMap builds a polarity map from assumption literals; compatible
// reports whether a model does not contradict it.
func assumeMap(assumptions []ddnnf.Literal) map[int]bool {
	m := make(map[int]bool, len(assumptions))
	for _, l := range assumptions {
		m[l.Var()] = l.Pos()
	}
	return m
}

func compatible(m map[int]bool, model []ddnnf.Literal) bool {
	for _, l := range model {
		if pol, ok := m[l.Var()]; ok && pol != l.Pos() {
			return false
		}
	}
	return true
}
