// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"os"

	"github.com/dalzilio/ddnnf"
	"github.com/spf13/cobra"
)

func translationCmd() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "translation",
		Short: "translates the formula into the c2d output format",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := in.read()
			if err != nil {
				return err
			}
			return ddnnf.WriteC2d(os.Stdout, g)
		},
	}
	in.register(cmd)
	return cmd
}
