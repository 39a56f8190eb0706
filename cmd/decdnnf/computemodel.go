// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"errors"
	"os"

	"github.com/dalzilio/ddnnf"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func computeModelCmd() *cobra.Command {
	var in inputFlags
	var strAssumptions string
	cmd := &cobra.Command{
		Use:   "compute-model",
		Short: "returns a model of the formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := in.read()
			if err != nil {
				return err
			}
			assumptions, err := parseAssumptions(strAssumptions)
			if err != nil {
				return err
			}
			finder := ddnnf.NewFinder(g)
			model, err := finder.Find(assumptions...)
			if errors.Is(err, ddnnf.ErrNoModel) {
				color.New(color.FgRed).Println("s UNSATISFIABLE")
				if len(assumptions) > 0 {
					return err
				}
				return nil
			}
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Println("s SATISFIABLE")
			return ddnnf.WriteModel(os.Stdout, model)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&strAssumptions, "assumptions", "a", "", "sets some assumptions as a string of blank separated DIMACS literals")
	return cmd
}
