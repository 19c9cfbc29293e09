package eventv1

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	tradev1 "github.com/tradelat/matchbench/internal/domain/trade/v1"
)

// Kind tags the variant carried by an Event.
type Kind uint8

const (
	// KindOrderReceived is emitted when the engine accepts a new order.
	KindOrderReceived Kind = iota
	// KindTradeExecuted is emitted once per match.
	KindTradeExecuted
	// KindOrderFilled is emitted when an order reaches Filled.
	KindOrderFilled
	// KindOrderCancelled is emitted for every cancel outcome, success or not.
	KindOrderCancelled
)

func (k Kind) String() string {
	switch k {
	case KindOrderReceived:
		return "ORDER RECEIVED"
	case KindTradeExecuted:
		return "TRADE EXECUTED"
	case KindOrderFilled:
		return "ORDER FILLED"
	case KindOrderCancelled:
		return "ORDER CANCEL"
	default:
		return "UNKNOWN"
	}
}

// Event is a fixed-shape record describing one engine state transition. It is
// a plain value: emitting one copies it, so the engine never shares memory
// with a sink's consumer goroutine. Only the fields relevant to the tagged
// Kind are populated.
type Event struct {
	Kind      Kind
	Timestamp int64

	// Order fields (OrderReceived, OrderFilled).
	OrderID    uuid.UUID
	Instrument string
	Side       orderv1.Side
	Type       orderv1.Type
	Status     orderv1.Status
	Quantity   float64
	Remaining  float64
	Price      float64

	// Trade fields (TradeExecuted).
	TradeID     ulid.ULID
	TakerSide   orderv1.Side
	BuyOrderID  uuid.UUID
	SellOrderID uuid.UUID

	// Cancel outcome (OrderCancelled).
	CancelOK bool
}

// OrderReceived builds the acceptance event for a freshly stamped order.
func OrderReceived(o *orderv1.Order) Event {
	return Event{
		Kind:       KindOrderReceived,
		Timestamp:  o.Timestamp,
		OrderID:    o.ID,
		Instrument: o.Instrument,
		Side:       o.Side,
		Type:       o.Type,
		Quantity:   o.Quantity,
		Price:      o.Price,
	}
}

// TradeExecuted builds the execution event for a trade.
func TradeExecuted(t tradev1.Trade) Event {
	return Event{
		Kind:        KindTradeExecuted,
		Timestamp:   t.Timestamp,
		Instrument:  t.Instrument,
		Price:       t.Price,
		Quantity:    t.Quantity,
		TradeID:     t.ID,
		TakerSide:   t.TakerSide,
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
	}
}

// OrderFilled builds the terminal fill event for an order.
func OrderFilled(o *orderv1.Order, timestamp int64) Event {
	return Event{
		Kind:       KindOrderFilled,
		Timestamp:  timestamp,
		OrderID:    o.ID,
		Instrument: o.Instrument,
		Type:       o.Type,
		Status:     o.Status,
		Quantity:   o.Quantity,
		Remaining:  o.Remaining,
	}
}

// OrderCancelled builds a cancel-outcome event. ok reports whether the order
// was actually removed from the book.
func OrderCancelled(orderID uuid.UUID, ok bool, timestamp int64) Event {
	return Event{
		Kind:      KindOrderCancelled,
		Timestamp: timestamp,
		OrderID:   orderID,
		CancelOK:  ok,
	}
}
