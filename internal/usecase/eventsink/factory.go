// Package eventsink implements the nine logging strategies the benchmark
// compares. Every implementation satisfies eventsinkv1.Sink; the differences
// are deliberately confined to where the formatting happens, where the IO
// happens, and what the caller pays per event.
package eventsink

import (
	"fmt"
	"os"
	"path/filepath"

	eventsinkv1 "github.com/tradelat/matchbench/internal/domain/eventsink/v1"
	"github.com/tradelat/matchbench/pkg/config"
	"github.com/tradelat/matchbench/pkg/logger"
)

// New builds the sink for the selected mode. File-backed sinks write under
// cfg.OutputDir, one file per strategy so consecutive runs do not clobber
// each other's output.
func New(mode eventsinkv1.Mode, cfg config.SinkConfig, log *logger.Logger) (eventsinkv1.Sink, error) {
	switch mode {
	case eventsinkv1.ModeNone:
		return NewNoopSink(), nil

	case eventsinkv1.ModeConsole:
		return NewConsoleSink(os.Stdout), nil

	case eventsinkv1.ModeFile:
		path, err := outputPath(cfg.OutputDir, "naive_output.log")
		if err != nil {
			return nil, err
		}
		return NewFileSink(path)

	case eventsinkv1.ModeBufferedFile:
		path, err := outputPath(cfg.OutputDir, "buffered_output.log")
		if err != nil {
			return nil, err
		}
		return NewBufferedFileSink(path, cfg.BufferSize)

	case eventsinkv1.ModeAsyncString:
		path, err := outputPath(cfg.OutputDir, "async_string_output.log")
		if err != nil {
			return nil, err
		}
		return NewAsyncStringSink(path, cfg.ChannelCapacity, cfg.BufferSize, log)

	case eventsinkv1.ModeAsyncClosure:
		path, err := outputPath(cfg.OutputDir, "async_closure_output.log")
		if err != nil {
			return nil, err
		}
		return NewAsyncClosureSink(path, cfg.ChannelCapacity, cfg.BufferSize, log)

	case eventsinkv1.ModeAsyncRecord:
		path, err := outputPath(cfg.OutputDir, "async_enum_output.log")
		if err != nil {
			return nil, err
		}
		return NewAsyncRecordSink(path, cfg.ChannelCapacity, cfg.BufferSize, log)

	case eventsinkv1.ModeTracingFile:
		path, err := outputPath(cfg.OutputDir, "tracing_output.log")
		if err != nil {
			return nil, err
		}
		return NewTracingFileSink(path, cfg.BufferSize, cfg.FlushInterval)

	case eventsinkv1.ModeTracingConsole:
		return NewTracingConsoleSink(), nil

	default:
		return nil, fmt.Errorf("%w: %q", eventsinkv1.ErrUnknownMode, mode)
	}
}

func outputPath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}
