// Command dynpeg compiles grammar files written in this project's PEG
// dialect and either parses input against them or emits their rule
// table as Go source.
package main

import (
	"os"

	"github.com/dynpeg/dynpeg/internal/diagnostic"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		diagnostic.Log.WithError(err).Error("dynpeg: command failed")
		os.Exit(diagnostic.ExitCode(err))
	}
}
