package eventsink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
	"github.com/tradelat/matchbench/pkg/logger"
)

// AsyncClosureSink sends a closure per event; the consumer just invokes it
// against the writer. The closure captures the event, so the producer pays a
// heap allocation per Emit on top of the channel send. It exists to make that
// cost visible next to the string and record variants.
type AsyncClosureSink struct {
	ch     chan func(io.Writer) error
	done   chan struct{}
	f      *os.File
	w      *bufio.Writer
	log    *logger.Logger
	closed bool

	err error
}

func NewAsyncClosureSink(path string, capacity, bufferSize int, log *logger.Logger) (*AsyncClosureSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	s := &AsyncClosureSink{
		ch:   make(chan func(io.Writer) error, capacity),
		done: make(chan struct{}),
		f:    f,
		w:    bufio.NewWriterSize(f, bufferSize),
		log:  log,
	}
	go s.consume()
	return s, nil
}

func (s *AsyncClosureSink) Emit(ev eventv1.Event) error {
	if s.closed {
		return nil
	}
	s.ch <- func(w io.Writer) error {
		line := ev.AppendText(make([]byte, 0, 256))
		line = append(line, '\n')
		_, err := w.Write(line)
		return err
	}
	return nil
}

func (s *AsyncClosureSink) Close() error {
	if s.closed {
		return s.err
	}
	s.closed = true
	close(s.ch)
	<-s.done

	if s.err != nil {
		s.f.Close()
		return fmt.Errorf("event sink degraded: %w", s.err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func (s *AsyncClosureSink) consume() {
	defer close(s.done)
	for write := range s.ch {
		if s.err != nil {
			continue
		}
		if err := write(s.w); err != nil {
			s.fail(err)
		}
	}
	if s.err == nil {
		if err := s.w.Flush(); err != nil {
			s.fail(err)
		}
	}
}

func (s *AsyncClosureSink) fail(err error) {
	s.err = err
	s.log.Warn("event sink write failed, discarding remaining events", logger.Field{Key: "error", Value: err.Error()})
}
