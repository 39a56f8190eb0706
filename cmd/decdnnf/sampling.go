// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"os"
	"time"

	"github.com/dalzilio/ddnnf"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func samplingCmd() *cobra.Command {
	var in inputFlags
	var limit int
	var seed int64
	var lexicographic bool
	cmd := &cobra.Command{
		Use:   "sampling",
		Short: "performs a uniform sampling among the models of the formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			logrus.Infof("random seed is %d", seed)
			g, err := in.read()
			if err != nil {
				return err
			}
			sampler, err := newSampler(g, lexicographic, seed)
			if err != nil {
				return err
			}
			models, err := sampler.SampleN(limit)
			if err != nil {
				return err
			}
			mw := newModelWriter(os.Stdout, g.Varnum(), false)
			for _, m := range models {
				mw.write(m)
			}
			mw.flush()
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 1, "sets the number of models to sample")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "sets the random seed")
	cmd.Flags().BoolVar(&lexicographic, "lexicographic-order", false, "applies a lexicographic order on the models")
	return cmd
}

func newSampler(g *ddnnf.DDNNF, lexicographic bool, seed int64) (*ddnnf.Sampler, error) {
	counter := ddnnf.NewCounter(g)
	logrus.Infof("formula has %s models", counter.Count())
	if lexicographic {
		engine, err := ddnnf.NewOrderedAccess(g, nil)
		if err != nil {
			return nil, err
		}
		return ddnnf.NewOrderedSampler(engine, seed), nil
	}
	return ddnnf.NewSampler(ddnnf.NewAccess(counter), seed), nil
}
