package orderv1

import (
	"time"

	"github.com/google/uuid"
)

// Side represents the direction of an order.
type Side string

const (
	// SideBuy represents a bid order.
	SideBuy Side = "Buy"
	// SideSell represents an ask order.
	SideSell Side = "Sell"
)

// Type represents the execution style of an order.
type Type string

const (
	// TypeLimit orders carry a price and may rest on the book.
	TypeLimit Type = "Limit"
	// TypeMarket orders match immediately against available liquidity or are discarded.
	TypeMarket Type = "Market"
)

// Status represents the lifecycle state of an order.
// Filled and Cancelled are terminal; no transition leaves them.
type Status string

const (
	// StatusNew is the state of an order before any fill.
	StatusNew Status = "New"
	// StatusPartiallyFilled is the state after at least one partial fill.
	StatusPartiallyFilled Status = "PartiallyFilled"
	// StatusFilled is the terminal state of a fully matched order.
	StatusFilled Status = "Filled"
	// StatusCancelled is the terminal state of a cancelled or discarded order.
	StatusCancelled Status = "Cancelled"
)

// Order represents a single order flowing through the matching engine.
// Price is zero and ignored for market orders. Timestamp and Sequence are
// stamped by the engine on acceptance and together define time priority.
type Order struct {
	ID         uuid.UUID `json:"id"`
	Instrument string    `json:"instrument"`
	Side       Side      `json:"side"`
	Type       Type      `json:"type"`
	Status     Status    `json:"status"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	Remaining  float64   `json:"remaining"`
	Timestamp  int64     `json:"timestamp"`
	Sequence   int64     `json:"sequence"`
}

// NewLimit creates a new limit order with the given price.
func NewLimit(id uuid.UUID, instrument string, side Side, price, quantity float64) *Order {
	return newOrder(id, instrument, side, TypeLimit, price, quantity)
}

// NewMarket creates a new market order. Market orders carry no price.
func NewMarket(id uuid.UUID, instrument string, side Side, quantity float64) *Order {
	return newOrder(id, instrument, side, TypeMarket, 0, quantity)
}

func newOrder(id uuid.UUID, instrument string, side Side, typ Type, price, quantity float64) *Order {
	return &Order{
		ID:         id,
		Instrument: instrument,
		Side:       side,
		Type:       typ,
		Status:     StatusNew,
		Price:      price,
		Quantity:   quantity,
		Remaining:  quantity,
		Timestamp:  time.Now().UnixNano(),
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsFilled checks if the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.Remaining == 0
}

// IsTerminal checks if the order reached a terminal status.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusFilled || o.Status == StatusCancelled
}

// FilledQuantity returns the quantity matched so far.
func (o *Order) FilledQuantity() float64 {
	return o.Quantity - o.Remaining
}

// Fill decrements the remaining quantity by qty, clamping at zero, and
// advances the status to PartiallyFilled or Filled.
func (o *Order) Fill(qty float64) {
	if qty >= o.Remaining {
		o.Remaining = 0
	} else {
		o.Remaining -= qty
	}

	if o.IsFilled() {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartiallyFilled
	}
}
