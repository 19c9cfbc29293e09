package eventsink

import (
	"fmt"
	"os"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
)

// FileSink writes each event to the file with a direct, unbuffered write.
// Every Emit is a syscall, which is exactly the cost profile it exists to
// demonstrate.
type FileSink struct {
	f   *os.File
	buf []byte
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &FileSink{f: f, buf: make([]byte, 0, 256)}, nil
}

func (s *FileSink) Emit(ev eventv1.Event) error {
	s.buf = ev.AppendText(s.buf[:0])
	s.buf = append(s.buf, '\n')
	if _, err := s.f.Write(s.buf); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}
