package orderbookv1

import (
	"errors"
	"fmt"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
)

var (
	ErrNilOrder        = errors.New("order cannot be nil")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateOrder  = errors.New("order id already exists")
	ErrMarketNotFound  = errors.New("no order book for instrument")
	ErrMarketOrderRest = errors.New("market orders cannot rest on the book")
)

// Limit is one price level: a FIFO queue of resting orders at the same price.
// Queue position is arrival position; the whole book is mutated by a single
// goroutine, so appends preserve time priority by construction.
type Limit struct {
	Price       float64          `json:"price"`
	Orders      []*orderv1.Order `json:"orders"`
	TotalVolume float64          `json:"totalVolume"`
}

// NewLimit creates a new Limit at the specified price.
func NewLimit(price float64) *Limit {
	return &Limit{
		Price:  price,
		Orders: make([]*orderv1.Order, 0),
	}
}

// AddOrder appends an order to the tail of the queue and updates the total
// volume.
func (l *Limit) AddOrder(order *orderv1.Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Remaining <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidQuantity, order.Remaining)
	}

	l.Orders = append(l.Orders, order)
	l.TotalVolume += order.Remaining

	return nil
}

// RemoveOrder removes a resting order from the queue and updates the total
// volume.
func (l *Limit) RemoveOrder(order *orderv1.Order) error {
	if order == nil {
		return ErrNilOrder
	}

	for i, o := range l.Orders {
		if o == order {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.TotalVolume -= order.Remaining
			return nil
		}
	}

	return ErrOrderNotFound
}

// Fill matches the incoming taker against the queue front-first and returns
// the matches, each priced at this level's price. Fully filled resting orders
// are removed; a partially filled one stays at the queue front.
func (l *Limit) Fill(taker *orderv1.Order) []Match {
	if taker == nil {
		return nil
	}

	var matches []Match

	for len(l.Orders) > 0 && taker.Remaining > 0 {
		maker := l.Orders[0]

		qty := taker.Remaining
		if maker.Remaining < qty {
			qty = maker.Remaining
		}

		maker.Fill(qty)
		taker.Fill(qty)
		l.TotalVolume -= qty

		matches = append(matches, Match{
			Maker:    maker,
			Taker:    taker,
			Price:    l.Price,
			Quantity: qty,
		})

		if maker.IsFilled() {
			l.Orders = l.Orders[1:]
		}
	}

	return matches
}

// IsEmpty checks if the limit has no orders.
func (l *Limit) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of resting orders at this limit.
func (l *Limit) OrderCount() int {
	return len(l.Orders)
}

// Front returns the order at the head of the queue, or nil.
func (l *Limit) Front() *orderv1.Order {
	if len(l.Orders) == 0 {
		return nil
	}
	return l.Orders[0]
}
