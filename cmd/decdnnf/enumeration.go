// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dalzilio/ddnnf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func enumerationCmd() *cobra.Command {
	var in inputFlags
	var compact, decisionTree bool
	var strAssumptions string
	cmd := &cobra.Command{
		Use:   "model-enumeration",
		Short: "enumerates the models of the formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			if compact && decisionTree {
				return errors.New("--compact conflicts with --decision-tree")
			}
			g, err := in.read()
			if err != nil {
				return err
			}
			assumptions, err := parseAssumptions(strAssumptions)
			if err != nil {
				return err
			}
			assumed := assumeMap(assumptions)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			mw := newModelWriter(os.Stdout, g.Varnum(), compact)
			emit := func(m []ddnnf.Literal) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if !compatible(assumed, m) {
					return nil
				}
				mw.write(m)
				return nil
			}
			switch {
			case decisionTree:
				err = ddnnf.EnumerateDecisionTree(g, emit)
			case compact:
				err = ddnnf.NewCompactEnumerator(g).Do(emit)
			default:
				err = ddnnf.NewEnumerator(g).Do(emit)
			}
			mw.flush()
			if err != nil {
				return err
			}
			if compact {
				logrus.Infof("enumerated %s compact models corresponding to %s models", &mw.nEnumerated, &mw.nModels)
			} else {
				logrus.Infof("enumerated %s models", &mw.nEnumerated)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "enumerate disjoint partial models, leaving free variables unassigned")
	cmd.Flags().BoolVar(&decisionTree, "decision-tree", false, "enumerate by building a decision tree (should be less efficient)")
	cmd.Flags().StringVarP(&strAssumptions, "assumptions", "a", "", "only stream the models compatible with these blank separated DIMACS literals")
	return cmd
}
