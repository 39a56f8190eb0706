// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"

	"github.com/dalzilio/ddnnf"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func countingCmd() *cobra.Command {
	var in inputFlags
	var strAssumptions string
	cmd := &cobra.Command{
		Use:   "model-counting",
		Short: "counts the models of the formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := in.read()
			if err != nil {
				return err
			}
			counter := ddnnf.NewCounter(g)
			if strAssumptions == "" {
				fmt.Println(counter.Count())
				return nil
			}
			assumptions, err := parseAssumptions(strAssumptions)
			if err != nil {
				return err
			}
			count, err := counter.CountAssuming(assumptions...)
			if err != nil {
				return err
			}
			logrus.Infof("counting under %d assumptions", len(assumptions))
			fmt.Println(count)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&strAssumptions, "assumptions", "a", "", "sets some assumptions as a string of blank separated DIMACS literals")
	return cmd
}
