package compiler

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const logPrefix = "[regauto] "

// Logger provides verbose output for every pipeline stage.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger creates a new logger writing to stderr.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger. A nil writer is ignored.
func (l *Logger) SetOutput(w io.Writer) {
	if w != nil {
		l.out = w
	}
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(l.out, logPrefix+format+"\n", args...)
	}
}

// Block prints every line of a multi-line text, each with the log prefix.
func (l *Logger) Block(text string) {
	if !l.enabled {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(l.out, "%s  %s\n", logPrefix, line)
	}
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.enabled {
		fmt.Fprintf(l.out, "\n%s=== %s ===\n", logPrefix, name)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
