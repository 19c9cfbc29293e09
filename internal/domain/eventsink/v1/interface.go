package eventsinkv1

import (
	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
)

// Sink consumes the events the matching engine emits. Emit is called once per
// event, from the engine goroutine, in emission order. Synchronous sinks
// perform their IO inside Emit and surface IO failures through its error;
// asynchronous sinks return from Emit after enqueueing and surface consumer
// failures through Close.
//
// Close drains any pending work, joins background goroutines and releases the
// output handle. Emit after Close is a silent drop, never a block.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventsinkv1_mock
type Sink interface {
	Emit(ev eventv1.Event) error
	Close() error
}
