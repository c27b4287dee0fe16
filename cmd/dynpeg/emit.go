package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dynpeg/dynpeg/internal/emitcode"
)

type emitFlags struct {
	grammarPath string
}

func newEmitCmd() *cobra.Command {
	f := &emitFlags{}
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit a grammar file's rule table as Go combinator source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd.OutOrStdout(), f)
		},
	}

	registerEmitFlags(cmd.Flags(), f)
	cmd.MarkFlagRequired("grammar")
	return cmd
}

func registerEmitFlags(flags *pflag.FlagSet, f *emitFlags) {
	flags.StringVar(&f.grammarPath, "grammar", "", "path to the grammar file")
}

func runEmit(w io.Writer, f *emitFlags) error {
	if f.grammarPath == "" {
		return fmt.Errorf("dynpeg emit: --grammar is required")
	}
	text, err := os.ReadFile(f.grammarPath)
	if err != nil {
		return fmt.Errorf("reading grammar file: %w", err)
	}
	code, err := emitcode.Emit(string(text))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, code)
	return err
}
