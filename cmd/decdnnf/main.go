// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command decdnnf answers queries over compiled Decision-DNNF formulas:
// model counting, model enumeration, direct access to the k-th model,
// uniform sampling, and translation to the c2d format.
package main

import (
	"os"

	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var verbosity int

func main() {
	root := &cobra.Command{
		Use:           "decdnnf",
		Short:         "a tool for queries over Decision-DNNF formulas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			switch {
			case verbosity >= 2:
				logrus.SetLevel(logrus.DebugLevel)
			case verbosity == 1:
				logrus.SetLevel(logrus.InfoLevel)
			default:
				logrus.SetLevel(logrus.WarnLevel)
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase the logging verbosity (repeatable)")
	// accept underscores in flag names, as in --do_not_check
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	root.AddCommand(
		translationCmd(),
		countingCmd(),
		enumerationCmd(),
		computeModelCmd(),
		directAccessCmd(),
		samplingCmd(),
	)
	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
