package engine

import "time"

type Option func(*Engine)

// WithClock overrides the time source, used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}
