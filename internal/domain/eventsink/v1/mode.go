package eventsinkv1

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned for a mode string outside the supported set.
var ErrUnknownMode = errors.New("unknown logging mode")

// Mode selects one of the nine logging strategies. The choice is made once at
// startup and is the independent variable of the benchmark.
type Mode string

const (
	// ModeNone discards every event (baseline).
	ModeNone Mode = "none"
	// ModeConsole formats and writes each event to stdout, blocking.
	ModeConsole Mode = "naive"
	// ModeFile writes each event to a file without buffering.
	ModeFile Mode = "nfw"
	// ModeBufferedFile writes through an in-process buffer, flushed on Close.
	ModeBufferedFile Mode = "bfw"
	// ModeAsyncString formats on the caller and hands the string to a consumer goroutine.
	ModeAsyncString Mode = "as"
	// ModeAsyncClosure enqueues a closure the consumer goroutine invokes.
	ModeAsyncClosure Mode = "ac"
	// ModeAsyncRecord enqueues the event record itself; the consumer formats.
	ModeAsyncRecord Mode = "ae"
	// ModeTracingFile routes events through zap with a buffered file appender.
	ModeTracingFile Mode = "tf"
	// ModeTracingConsole routes events through zap writing to stdout.
	ModeTracingConsole Mode = "tc"
)

// ParseMode resolves a CLI mode argument, accepting the short code or the
// spelled-out alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "none", "baseline":
		return ModeNone, nil
	case "println", "naive":
		return ModeConsole, nil
	case "naivefilewrite", "nfw":
		return ModeFile, nil
	case "bufferedfilewrite", "bfw":
		return ModeBufferedFile, nil
	case "asyncstring", "as":
		return ModeAsyncString, nil
	case "asyncclosure", "ac":
		return ModeAsyncClosure, nil
	case "asyncenum", "ae":
		return ModeAsyncRecord, nil
	case "tracingfile", "tf":
		return ModeTracingFile, nil
	case "tracingconsole", "tc":
		return ModeTracingConsole, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Modes lists every supported mode, for usage messages.
func Modes() []Mode {
	return []Mode{
		ModeNone, ModeConsole, ModeFile, ModeBufferedFile,
		ModeAsyncString, ModeAsyncClosure, ModeAsyncRecord,
		ModeTracingFile, ModeTracingConsole,
	}
}
