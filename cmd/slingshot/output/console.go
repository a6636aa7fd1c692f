// Package output writes slingshot's console messages and JSON results.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/willibrandon/slingshot/observability"
)

// Verbosity levels
type Verbosity int

const (
	// VerbosityQuiet shows errors only
	VerbosityQuiet Verbosity = iota
	// VerbosityNormal shows errors, warnings, and key operations (default)
	VerbosityNormal
	// VerbosityDetailed shows above + per-project progress
	VerbosityDetailed
	// VerbosityDiagnostic shows above + parser diagnostics and timing
	VerbosityDiagnostic
)

// ParseVerbosity maps a --verbosity value to a level. Single-letter forms are accepted.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "quiet":
		return VerbosityQuiet, nil
	case "", "n", "normal":
		return VerbosityNormal, nil
	case "d", "detailed":
		return VerbosityDetailed, nil
	case "diag", "diagnostic":
		return VerbosityDiagnostic, nil
	default:
		return VerbosityNormal, fmt.Errorf("invalid verbosity %q (expected quiet, normal, detailed or diagnostic)", s)
	}
}

// LogLevel returns the structured log level matching a verbosity.
func (v Verbosity) LogLevel() observability.LogLevel {
	switch v {
	case VerbosityQuiet:
		return observability.ErrorLevel
	case VerbosityDetailed:
		return observability.InfoLevel
	case VerbosityDiagnostic:
		return observability.DebugLevel
	default:
		return observability.WarnLevel
	}
}

// Console provides output abstraction. Data (generated build files, JSON)
// goes to out; every message goes to err so it never mixes with data on stdout.
type Console struct {
	out       io.Writer
	err       io.Writer
	verbosity Verbosity
	mu        sync.Mutex
	colors    bool
}

// NewConsole creates a new console
func NewConsole(out, err io.Writer, verbosity Verbosity) *Console {
	c := &Console{
		out:       out,
		err:       err,
		verbosity: verbosity,
		colors:    IsColorEnabled(),
	}

	if !c.colors {
		setColors(false)
	}

	return c
}

// DefaultConsole creates a console with stdout/stderr and normal verbosity
func DefaultConsole() *Console {
	return NewConsole(os.Stdout, os.Stderr, VerbosityNormal)
}

// Out returns the data writer
func (c *Console) Out() io.Writer {
	return c.out
}

// Err returns the message writer
func (c *Console) Err() io.Writer {
	return c.err
}

// SetVerbosity sets the verbosity level
func (c *Console) SetVerbosity(v Verbosity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbosity = v
}

// GetVerbosity returns the current verbosity level
func (c *Console) GetVerbosity() Verbosity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verbosity
}

// SetColors enables or disables color output
func (c *Console) SetColors(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colors = enabled
	setColors(enabled)
}

// Print writes to output
func (c *Console) Print(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, a...)
}

// Println writes line to output
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted output
func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) message(level Verbosity, clr colorPrinter, prefix, format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verbosity < level {
		return
	}
	if c.colors && clr != nil {
		clr.Fprintf(c.err, prefix+format+"\n", a...)
	} else {
		fmt.Fprintf(c.err, prefix+format+"\n", a...)
	}
}

type colorPrinter interface {
	Fprintf(w io.Writer, format string, a ...any) (int, error)
}

// Success writes success message (green)
func (c *Console) Success(format string, a ...any) {
	c.message(VerbosityNormal, ColorSuccess, "", format, a...)
}

// Error writes error message (red); shown at every verbosity
func (c *Console) Error(format string, a ...any) {
	c.message(VerbosityQuiet, ColorError, "Error: ", format, a...)
}

// Warning writes warning message (yellow)
func (c *Console) Warning(format string, a ...any) {
	c.message(VerbosityNormal, ColorWarning, "Warning: ", format, a...)
}

// Info writes info message (cyan)
func (c *Console) Info(format string, a ...any) {
	c.message(VerbosityNormal, ColorInfo, "", format, a...)
}

// Detail writes detailed message
func (c *Console) Detail(format string, a ...any) {
	c.message(VerbosityDetailed, nil, "", format, a...)
}

// Debug writes debug message (white)
func (c *Console) Debug(format string, a ...any) {
	c.message(VerbosityDiagnostic, ColorDebug, "[DEBUG] ", format, a...)
}
