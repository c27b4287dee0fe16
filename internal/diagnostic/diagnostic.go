// Package diagnostic renders parse failures for the CLI, reusing the
// *peg.ParseError fields so the wording matches exactly what a caller
// gets back from the library's error value (spec section 7, "row,
// column, excerpt, description").
package diagnostic

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dynpeg/dynpeg"
)

// Log is the shared logger cmd/dynpeg's -v flag raises to debug level
// (see root.go's PersistentPreRun) and the grammar compiler logs
// through for its undefined-rule-reference suggestions, grounded on
// open-policy-agent-opa's and opal-lang-opal's use of a shared logger
// for CLI verbosity rather than scattering calls across the default
// global one.
var Log = logrus.StandardLogger()

// Report writes a parse failure to w in the engine's own wording
// (ParseError.Error() already includes position, description, source
// excerpt and a caret), prefixed with its priority so a reader can
// tell a backtracked-then-surfaced Normal failure from a Critical cut
// without inspecting the message text.
func Report(w io.Writer, err error) {
	pe, ok := err.(*peg.ParseError)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", pe.Priority, pe.Error())
}

// ExitCode maps a parse outcome to a process exit status: 0 for
// success, 2 for a Critical cut (the grammar author's explicit
// error()), 1 for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if pe, ok := err.(*peg.ParseError); ok && pe.Priority == peg.Critical {
		return 2
	}
	return 1
}
