// Package logger writes the rulebook's diagnostic lines to stderr.
//
// Debug, Info, Warn and Section only print with --verbose, so users can
// follow exports, snapshots and indexing on demand. Error always prints:
// it reports I/O failures the user has to act on.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose turns the verbose levels on or off.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether verbose levels print.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects every level. Tests pass a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Debug prints a [DEBUG] line when verbose.
func Debug(format string, args ...any) { write(false, "[DEBUG] "+format+"\n", args) }

// Info prints an [INFO] line when verbose.
func Info(format string, args ...any) { write(false, "[INFO] "+format+"\n", args) }

// Warn prints a [WARN] line when verbose.
func Warn(format string, args ...any) { write(false, "[WARN] "+format+"\n", args) }

// Error prints an [ERROR] line.
func Error(format string, args ...any) { write(true, "[ERROR] "+format+"\n", args) }

// Section prints a "=== name ===" heading when verbose, e.g. before startup
// wiring or an export.
func Section(name string) { write(false, "\n=== %s ===\n", []any{name}) }

// write holds mu for the whole Fprintf so concurrent lines never interleave.
func write(always bool, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()
	if always || verbose {
		fmt.Fprintf(output, format, args...)
	}
}
