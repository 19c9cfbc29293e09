// Package engine drives sequential order matching across instruments and
// publishes the resulting event stream to the configured sink.
package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	eventv1 "github.com/tradelat/matchbench/internal/domain/event/v1"
	eventsinkv1 "github.com/tradelat/matchbench/internal/domain/eventsink/v1"
	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	orderbookv1 "github.com/tradelat/matchbench/internal/domain/orderbook/v1"
	tradev1 "github.com/tradelat/matchbench/internal/domain/trade/v1"
	"github.com/tradelat/matchbench/internal/usecase/orderbook"
	"github.com/tradelat/matchbench/pkg/logger"
)

// Engine owns one orderbook per instrument and processes orders strictly one
// at a time. Nothing here takes a lock; a single goroutine drives the whole
// pipeline and the sink absorbs whatever concurrency the mode calls for.
type Engine struct {
	books   map[string]*orderbook.Orderbook
	sink    eventsinkv1.Sink
	log     *logger.Logger
	seq     int64
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func New(sink eventsinkv1.Sink, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		books:   make(map[string]*orderbook.Orderbook),
		sink:    sink,
		log:     log,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddMarket registers an instrument. Adding an existing instrument is a
// no-op.
func (e *Engine) AddMarket(instrument string) {
	if _, ok := e.books[instrument]; !ok {
		e.books[instrument] = orderbook.NewOrderbook(instrument)
	}
}

// Instruments returns the registered instruments in sorted order.
func (e *Engine) Instruments() []string {
	names := make([]string, 0, len(e.books))
	for name := range e.books {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Depth returns the current book levels for an instrument.
func (e *Engine) Depth(instrument string) (asks, bids []orderbook.Level, err error) {
	book, ok := e.books[instrument]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", orderbookv1.ErrMarketNotFound, instrument)
	}
	asks, bids = book.Depth()
	return asks, bids, nil
}

// ProcessOrder runs one order through validation, matching and event
// emission. Validation failures leave the book untouched. A sink error is
// fatal and aborts processing mid-stream.
func (e *Engine) ProcessOrder(o *orderv1.Order) error {
	if o == nil {
		return orderbookv1.ErrNilOrder
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: %v", orderbookv1.ErrInvalidQuantity, o.Quantity)
	}
	if o.Type == orderv1.TypeLimit && o.Price <= 0 {
		return fmt.Errorf("%w: %v", orderbookv1.ErrInvalidPrice, o.Price)
	}
	book, ok := e.books[o.Instrument]
	if !ok {
		return fmt.Errorf("%w: %s", orderbookv1.ErrMarketNotFound, o.Instrument)
	}

	o.Timestamp = e.now().UnixNano()
	e.seq++
	o.Sequence = e.seq

	if err := e.sink.Emit(eventv1.OrderReceived(o)); err != nil {
		return fmt.Errorf("emit order received: %w", err)
	}

	matches := book.MatchOrder(o)
	for i := range matches {
		trade := e.newTrade(o, &matches[i])
		if err := e.sink.Emit(eventv1.TradeExecuted(trade)); err != nil {
			return fmt.Errorf("emit trade executed: %w", err)
		}
		if matches[i].MakerIsFilled() {
			if err := e.sink.Emit(eventv1.OrderFilled(matches[i].Maker, trade.Timestamp)); err != nil {
				return fmt.Errorf("emit maker filled: %w", err)
			}
		}
	}

	switch {
	case o.IsFilled():
		if err := e.sink.Emit(eventv1.OrderFilled(o, e.now().UnixNano())); err != nil {
			return fmt.Errorf("emit taker filled: %w", err)
		}
	case o.Type == orderv1.TypeLimit:
		if err := book.InsertOrder(o); err != nil {
			return fmt.Errorf("rest residual order: %w", err)
		}
	default:
		// market residual has nothing to rest against
		o.Status = orderv1.StatusCancelled
		if err := e.sink.Emit(eventv1.OrderCancelled(o.ID, true, e.now().UnixNano())); err != nil {
			return fmt.Errorf("emit residual cancelled: %w", err)
		}
	}
	return nil
}

// CancelOrderByID removes a resting order. Cancelling an unknown or already
// terminal order is not an error: it emits a failed-cancel event and returns
// a nil order.
func (e *Engine) CancelOrderByID(instrument string, id uuid.UUID) (*orderv1.Order, error) {
	book, ok := e.books[instrument]
	if !ok {
		return nil, fmt.Errorf("%w: %s", orderbookv1.ErrMarketNotFound, instrument)
	}

	o, err := book.RemoveOrder(id)
	if err != nil {
		if err := e.sink.Emit(eventv1.OrderCancelled(id, false, e.now().UnixNano())); err != nil {
			return nil, fmt.Errorf("emit cancel failed: %w", err)
		}
		return nil, nil
	}

	o.Status = orderv1.StatusCancelled
	if err := e.sink.Emit(eventv1.OrderCancelled(id, true, e.now().UnixNano())); err != nil {
		return nil, fmt.Errorf("emit cancelled: %w", err)
	}
	return o, nil
}

func (e *Engine) newTrade(taker *orderv1.Order, m *orderbookv1.Match) tradev1.Trade {
	buyID, sellID := m.BuySellOrderIDs()
	return tradev1.New(
		ulid.MustNew(ulid.Timestamp(e.now()), e.entropy),
		taker.Instrument,
		m.Price,
		m.Quantity,
		buyID,
		sellID,
		taker.Side,
		e.now().UnixNano(),
	)
}
