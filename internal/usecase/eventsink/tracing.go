package eventsink

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
)

// TracingFileSink routes events through a full structured-logging pipeline:
// a zap core with a buffered write syncer that flushes on size or on a timer
// from its own background goroutine. Each line carries zap's timestamp and
// level on top of the event text, so the output is richer and the per-event
// cost includes the whole framework.
type TracingFileSink struct {
	zl *zap.Logger
	ws *zapcore.BufferedWriteSyncer
	f  *os.File
}

func NewTracingFileSink(path string, bufferSize int, flushInterval time.Duration) (*TracingFileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	ws := &zapcore.BufferedWriteSyncer{
		WS:            zapcore.AddSync(f),
		Size:          bufferSize,
		FlushInterval: flushInterval,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(tracingEncoderConfig()), ws, zapcore.InfoLevel)
	return &TracingFileSink{zl: zap.New(core), ws: ws, f: f}, nil
}

func (s *TracingFileSink) Emit(ev eventv1.Event) error {
	s.zl.Info(ev.Text())
	return nil
}

// Close stops the buffered syncer, which flushes everything still queued and
// joins its flush goroutine, then closes the file.
func (s *TracingFileSink) Close() error {
	if err := s.ws.Stop(); err != nil {
		s.f.Close()
		return fmt.Errorf("stop buffered syncer: %w", err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// TracingConsoleSink is the same zap pipeline pointed at stdout without
// buffering. Every Emit is a synchronous locked write to the terminal.
type TracingConsoleSink struct {
	zl *zap.Logger
}

func NewTracingConsoleSink() *TracingConsoleSink {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(tracingEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)
	return &TracingConsoleSink{zl: zap.New(core)}
}

func (s *TracingConsoleSink) Emit(ev eventv1.Event) error {
	s.zl.Info(ev.Text())
	return nil
}

func (s *TracingConsoleSink) Close() error {
	// Sync on a terminal returns EINVAL, not a real failure.
	_ = s.zl.Sync()
	return nil
}

func tracingEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
