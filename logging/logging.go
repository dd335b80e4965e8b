// Package logging provides the side channel the solver uses to report
// warnings that must never interrupt a run (spec §7.4: exact-backend
// unavailability, sidecar JSON load failures). It mirrors the teacher's
// io.Writer-wrapped objective loggers (optim.go's ObjectiveLogger,
// default.go's ObjectivePrinter) rather than pulling in a leveled logging
// framework the teacher repo never used.
package logging

import (
	"fmt"
	"io"
	"os"
)

// Writer is where warnings go. Tests may swap it for a buffer.
var Writer io.Writer = os.Stderr

// Warnf writes a formatted warning line to Writer. It never returns an
// error; a logging failure must not affect the solve.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(Writer, "warning: "+format+"\n", args...)
}

// Infof writes a formatted informational line, used by -v/--verbose CLI
// output.
func Infof(format string, args ...interface{}) {
	fmt.Fprintf(Writer, format+"\n", args...)
}
