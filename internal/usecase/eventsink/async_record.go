package eventsink

import (
	"bufio"
	"fmt"
	"os"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
	"github.com/tradelat/matchbench/pkg/logger"
)

// AsyncRecordSink sends the event value itself over the channel and defers
// all formatting to the consumer goroutine. The producer pays only for the
// channel send of a flat struct, no allocation; the consumer formats into a
// reused scratch buffer and writes.
type AsyncRecordSink struct {
	ch     chan eventv1.Event
	done   chan struct{}
	f      *os.File
	w      *bufio.Writer
	log    *logger.Logger
	closed bool

	err error
}

func NewAsyncRecordSink(path string, capacity, bufferSize int, log *logger.Logger) (*AsyncRecordSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	s := &AsyncRecordSink{
		ch:   make(chan eventv1.Event, capacity),
		done: make(chan struct{}),
		f:    f,
		w:    bufio.NewWriterSize(f, bufferSize),
		log:  log,
	}
	go s.consume()
	return s, nil
}

func (s *AsyncRecordSink) Emit(ev eventv1.Event) error {
	if s.closed {
		return nil
	}
	s.ch <- ev
	return nil
}

func (s *AsyncRecordSink) Close() error {
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

func (s *AsyncRecordSink) consume() {
	defer close(s.done)
	buf := make([]byte, 0, 256)
	for ev := range s.ch {
		if s.err != nil {
			continue
		}
		buf = ev.AppendText(buf[:0])
		buf = append(buf, '\n')
		if _, err := s.w.Write(buf); err != nil {
			s.fail(err)
		}
	}
	if s.err == nil {
		if err := s.w.Flush(); err != nil {
			s.fail(err)
		}
	}
}

func (s *AsyncRecordSink) fail(err error) {
	s.err = err
	s.log.Warn("event sink write failed, discarding remaining events", logger.Field{Key: "error", Value: err.Error()})
}
