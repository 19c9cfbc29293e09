package eventsink

import (
	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
)

// NoopSink discards every event. It is the measurement baseline: runs with
// this sink show the cost of matching alone, with zero formatting and zero IO.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (s *NoopSink) Emit(eventv1.Event) error { return nil }

func (s *NoopSink) Close() error { return nil }
