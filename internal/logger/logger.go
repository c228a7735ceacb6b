// Package logger provides verbose progress logging for the tunesearch CLI.
// When the --verbose flag is set, indexing and lookup steps are reported on
// stderr: which records were skipped and why, how many documents each pass
// wrote, and which field and term a lookup used.
//
// Warnings are always printed; everything else only in verbose mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
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

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(levelDebug, format, args...)
}

// Info prints a progress message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(levelInfo, format, args...)
}

// Warn prints a warning regardless of verbose mode.
func Warn(format string, args ...any) {
	emit(levelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func emit(l level, format string, args ...any) {
	// Writers such as bytes.Buffer are not safe for concurrent use.
	mu.Lock()
	defer mu.Unlock()
	if !verbose && l != levelWarn {
		return
	}
	fmt.Fprintf(output, "["+string(l)+"] "+format+"\n", args...)
}
