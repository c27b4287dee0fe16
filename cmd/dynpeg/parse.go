package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dynpeg/dynpeg"
	"github.com/dynpeg/dynpeg/grammar"
	"github.com/dynpeg/dynpeg/internal/diagnostic"
)

type parseFlags struct {
	grammarPath string
	inputPath   string
	start       string
	watch       bool
}

func newParseCmd() *cobra.Command {
	f := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse input against a grammar file and print its AST",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), f)
		},
	}

	registerParseFlags(cmd.Flags(), f)
	cmd.MarkFlagRequired("grammar")
	return cmd
}

func registerParseFlags(flags *pflag.FlagSet, f *parseFlags) {
	flags.StringVar(&f.grammarPath, "grammar", "", "path to the grammar file")
	flags.StringVar(&f.inputPath, "input", "-", `path to the input file, or "-" for stdin`)
	flags.StringVar(&f.start, "start", "", "start rule (default: the grammar's first rule definition)")
	flags.BoolVar(&f.watch, "watch", false, "re-parse whenever the grammar or input file changes")
}

func runParse(w io.Writer, f *parseFlags) error {
	if f.grammarPath == "" {
		return fmt.Errorf("dynpeg parse: --grammar is required")
	}

	attempt := func() error {
		grammarText, err := os.ReadFile(f.grammarPath)
		if err != nil {
			return fmt.Errorf("reading grammar file: %w", err)
		}
		inputText, err := readInput(f.inputPath)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		start := f.start
		if start == "" {
			start, err = firstRuleName(string(grammarText))
			if err != nil {
				return err
			}
		}

		rt, err := grammar.Compile(string(grammarText), start)
		if err != nil {
			diagnostic.Report(w, err)
			return err
		}
		diagnostic.Log.WithField("start", start).Debug("dynpeg: grammar compiled")

		tree, err := peg.Parse(rt, string(inputText))
		if err != nil {
			diagnostic.Report(w, err)
			return err
		}
		dumpNode(w, tree, 0)
		return nil
	}

	if !f.watch {
		return attempt()
	}
	return watchAndRerun(f.grammarPath, f.inputPath, attempt)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// firstRuleName is a minimal fallback for CLI convenience; it returns
// the first "name = " occurrence, not a full grammar parse, so a
// malformed grammar still reaches grammar.Compile's proper error path
// when no --start was given.
func firstRuleName(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if i := strings.Index(line, "="); i > 0 {
			return strings.TrimSpace(line[:i]), nil
		}
	}
	return "", fmt.Errorf("dynpeg parse: could not determine a start rule; pass --start explicitly")
}

func dumpNode(w io.Writer, n peg.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case peg.KindVal:
		fmt.Fprintf(w, "%s%q\n", indent, n.Val)
	case peg.KindEOF:
		fmt.Fprintf(w, "%sEOF\n", indent)
	case peg.KindRule:
		fmt.Fprintf(w, "%s(%s\n", indent, n.Name)
		for _, c := range n.Children {
			dumpNode(w, c, depth+1)
		}
		fmt.Fprintf(w, "%s)\n", indent)
	}
}

// watchAndRerun runs attempt once immediately, then again every time
// the grammar or input file is written, until an unrecoverable
// watcher error occurs or the process is interrupted.
func watchAndRerun(grammarPath, inputPath string, attempt func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range []string{grammarPath, inputPath} {
		if p == "-" {
			continue
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	_ = attempt()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				diagnostic.Log.WithField("file", event.Name).Debug("dynpeg: change detected, re-parsing")
				_ = attempt()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			diagnostic.Log.WithError(err).Warn("dynpeg: watcher error")
		}
	}
}
