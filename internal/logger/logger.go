// Package logger provides leveled logging for finderbridge.
//
// Debug, Info, Warn and Section are only printed in verbose mode (the
// --verbose flag). Error is always printed. The host process sets a prefix
// so its lines can be told apart from the broker's on a shared stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	prefix  string
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetPrefix sets a tag printed before the level of every line.
// An empty prefix removes it.
func SetPrefix(p string) {
	mu.Lock()
	defer mu.Unlock()
	prefix = p
}

func write(level, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if prefix != "" {
		fmt.Fprintf(output, "%s [%s] %s\n", prefix, level, line)
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, line)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		write("DEBUG", format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		write("INFO", format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		write("WARN", format, args...)
	}
}

// Error prints a message regardless of verbose mode.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	write("ERROR", format, args...)
}
