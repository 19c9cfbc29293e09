package eventsink

import (
	"bufio"
	"fmt"
	"os"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
	"github.com/tradelat/matchbench/pkg/logger"
)

// AsyncStringSink formats the event on the producer side and hands the
// finished line to a consumer goroutine over a bounded channel. The producer
// pays for formatting plus one string allocation per event; the consumer only
// writes.
//
// If the consumer hits a write error it stops writing but keeps draining the
// channel, so the producer never blocks on a dead consumer. The error is
// returned from Close.
type AsyncStringSink struct {
	ch     chan string
	done   chan struct{}
	f      *os.File
	w      *bufio.Writer
	log    *logger.Logger
	closed bool

	// written by the consumer goroutine, read only after done is closed
	err error
}

func NewAsyncStringSink(path string, capacity, bufferSize int, log *logger.Logger) (*AsyncStringSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	s := &AsyncStringSink{
		ch:   make(chan string, capacity),
		done: make(chan struct{}),
		f:    f,
		w:    bufio.NewWriterSize(f, bufferSize),
		log:  log,
	}
	go s.consume()
	return s, nil
}

func (s *AsyncStringSink) Emit(ev eventv1.Event) error {
	if s.closed {
		return nil
	}
	s.ch <- ev.Text()
	return nil
}

// Close signals the consumer by closing the channel, waits for it to drain
// every queued event, and reports any write error the consumer hit.
func (s *AsyncStringSink) Close() error {
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

func (s *AsyncStringSink) consume() {
	defer close(s.done)
	for line := range s.ch {
		if s.err != nil {
			continue
		}
		if _, err := s.w.WriteString(line); err != nil {
			s.fail(err)
			continue
		}
		if err := s.w.WriteByte('\n'); err != nil {
			s.fail(err)
		}
	}
	if s.err == nil {
		if err := s.w.Flush(); err != nil {
			s.fail(err)
		}
	}
}

func (s *AsyncStringSink) fail(err error) {
	s.err = err
	s.log.Warn("event sink write failed, discarding remaining events", logger.Field{Key: "error", Value: err.Error()})
}
