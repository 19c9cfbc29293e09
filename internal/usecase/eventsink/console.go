package eventsink

import (
	"fmt"
	"io"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
)

// ConsoleSink formats and writes each event to w before Emit returns. With
// w = os.Stdout this is the worst case the benchmark measures: an unbuffered
// terminal write on the hot path of every event.
type ConsoleSink struct {
	w   io.Writer
	buf []byte
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w, buf: make([]byte, 0, 256)}
}

func (s *ConsoleSink) Emit(ev eventv1.Event) error {
	s.buf = ev.AppendText(s.buf[:0])
	s.buf = append(s.buf, '\n')
	if _, err := s.w.Write(s.buf); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (s *ConsoleSink) Close() error { return nil }
