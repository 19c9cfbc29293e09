package eventsink

import (
	"bufio"
	"fmt"
	"os"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
)

// BufferedFileSink formats synchronously but writes through a bufio.Writer,
// so most Emit calls are a memory copy and the syscalls happen once per
// buffer. Events may sit in the buffer until Close flushes them.
type BufferedFileSink struct {
	f   *os.File
	w   *bufio.Writer
	buf []byte
}

func NewBufferedFileSink(path string, bufferSize int) (*BufferedFileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &BufferedFileSink{
		f:   f,
		w:   bufio.NewWriterSize(f, bufferSize),
		buf: make([]byte, 0, 256),
	}, nil
}

func (s *BufferedFileSink) Emit(ev eventv1.Event) error {
	s.buf = ev.AppendText(s.buf[:0])
	s.buf = append(s.buf, '\n')
	if _, err := s.w.Write(s.buf); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (s *BufferedFileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("flush log buffer: %w", err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}
