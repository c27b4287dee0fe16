package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dynpeg/dynpeg/internal/diagnostic"
)

var verbose bool

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dynpeg",
		Short:         "Compile and run PEG grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				diagnostic.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newParseCmd())
	root.AddCommand(newEmitCmd())
	return root
}
