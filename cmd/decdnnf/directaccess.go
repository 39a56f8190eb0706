// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"math/big"
	"os"

	"github.com/dalzilio/ddnnf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func directAccessCmd() *cobra.Command {
	var in inputFlags
	var strIndex string
	var lexicographic bool
	cmd := &cobra.Command{
		Use:   "direct-access",
		Short: "returns the model at a given index in the ordered list of models of the formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, ok := new(big.Int).SetString(strIndex, 10)
			if !ok {
				return errors.Errorf("while parsing the model index %q", strIndex)
			}
			g, err := in.read()
			if err != nil {
				return err
			}
			model, err := modelAt(g, lexicographic, index)
			if err != nil {
				return err
			}
			mw := newModelWriter(os.Stdout, g.Varnum(), false)
			mw.write(model)
			mw.flush()
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&strIndex, "index", "n", "", "sets the index of the model")
	_ = cmd.MarkFlagRequired("index")
	cmd.Flags().BoolVar(&lexicographic, "lexicographic-order", false, "applies a lexicographic order on the models")
	return cmd
}

func modelAt(g *ddnnf.DDNNF, lexicographic bool, index *big.Int) ([]ddnnf.Literal, error) {
	if lexicographic {
		engine, err := ddnnf.NewOrderedAccess(g, nil)
		if err != nil {
			return nil, err
		}
		logrus.Infof("formula has %s models", engine.Count())
		return engine.Model(index)
	}
	engine := ddnnf.NewAccess(ddnnf.NewCounter(g))
	logrus.Infof("formula has %s models", engine.Count())
	return engine.Model(index)
}
