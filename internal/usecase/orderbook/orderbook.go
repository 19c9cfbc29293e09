package orderbook

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	orderbookv1 "github.com/tradelat/matchbench/internal/domain/orderbook/v1"
)

// Orderbook holds the resting orders of one instrument: price-keyed limit
// maps for both sides plus an id index for O(1) cancel lookup. It is owned
// and mutated exclusively by the engine goroutine, so it carries no locks;
// determinism of price-time priority follows from that single-writer rule.
type Orderbook struct {
	Instrument string
	AskLimits  map[float64]*orderbookv1.Limit
	BidLimits  map[float64]*orderbookv1.Limit
	Orders     map[uuid.UUID]*orderv1.Order
}

// Level is one row of the aggregated depth view.
type Level struct {
	Price  float64
	Volume float64
}

// NewOrderbook creates an empty book for an instrument.
func NewOrderbook(instrument string) *Orderbook {
	return &Orderbook{
		Instrument: instrument,
		AskLimits:  make(map[float64]*orderbookv1.Limit),
		BidLimits:  make(map[float64]*orderbookv1.Limit),
		Orders:     make(map[uuid.UUID]*orderv1.Order),
	}
}

// InsertOrder rests a limit order with remaining quantity at the tail of its
// price level, creating the level if absent. Market orders never rest.
func (ob *Orderbook) InsertOrder(order *orderv1.Order) error {
	if order == nil {
		return orderbookv1.ErrNilOrder
	}
	if order.Type == orderv1.TypeMarket {
		return orderbookv1.ErrMarketOrderRest
	}
	if order.Price <= 0 {
		return fmt.Errorf("%w: got %g", orderbookv1.ErrInvalidPrice, order.Price)
	}
	if order.Remaining <= 0 {
		return fmt.Errorf("%w: got %g", orderbookv1.ErrInvalidQuantity, order.Remaining)
	}
	if _, exists := ob.Orders[order.ID]; exists {
		return fmt.Errorf("%w: %s", orderbookv1.ErrDuplicateOrder, order.ID)
	}

	limits := ob.sideLimits(order.Side)
	limit, exists := limits[order.Price]
	if !exists {
		limit = orderbookv1.NewLimit(order.Price)
		limits[order.Price] = limit
	}

	if err := limit.AddOrder(order); err != nil {
		return err
	}
	ob.Orders[order.ID] = order

	return nil
}

// MatchOrder runs the taker against the opposing side in price-time priority
// and returns the matches. Filled resting orders and emptied levels are
// removed. The caller decides what to do with any taker residual.
func (ob *Orderbook) MatchOrder(taker *orderv1.Order) []orderbookv1.Match {
	if taker == nil {
		return nil
	}

	var matches []orderbookv1.Match

	for taker.Remaining > 0 {
		best := ob.bestOpposing(taker)
		if best == nil || !crosses(taker, best.Price) {
			break
		}

		limitMatches := best.Fill(taker)
		for i := range limitMatches {
			if limitMatches[i].MakerIsFilled() {
				delete(ob.Orders, limitMatches[i].Maker.ID)
			}
		}
		matches = append(matches, limitMatches...)

		if best.IsEmpty() {
			if taker.IsBid() {
				delete(ob.AskLimits, best.Price)
			} else {
				delete(ob.BidLimits, best.Price)
			}
		}
	}

	return matches
}

// RemoveOrder removes a resting order by id (cancel path) and returns it.
func (ob *Orderbook) RemoveOrder(id uuid.UUID) (*orderv1.Order, error) {
	order, exists := ob.Orders[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", orderbookv1.ErrOrderNotFound, id)
	}

	limits := ob.sideLimits(order.Side)
	limit, exists := limits[order.Price]
	if !exists {
		return nil, fmt.Errorf("%w: no level at %g for %s", orderbookv1.ErrOrderNotFound, order.Price, id)
	}

	if err := limit.RemoveOrder(order); err != nil {
		return nil, err
	}
	if limit.IsEmpty() {
		delete(limits, order.Price)
	}
	delete(ob.Orders, id)

	return order, nil
}

// BestBid returns the highest bid level, or nil.
func (ob *Orderbook) BestBid() *orderbookv1.Limit {
	var best *orderbookv1.Limit
	for _, limit := range ob.BidLimits {
		if best == nil || limit.Price > best.Price {
			best = limit
		}
	}
	return best
}

// BestAsk returns the lowest ask level, or nil.
func (ob *Orderbook) BestAsk() *orderbookv1.Limit {
	var best *orderbookv1.Limit
	for _, limit := range ob.AskLimits {
		if best == nil || limit.Price < best.Price {
			best = limit
		}
	}
	return best
}

// Asks returns ask limits sorted by price (ascending).
func (ob *Orderbook) Asks() orderbookv1.Limits {
	limits := make(orderbookv1.Limits, 0, len(ob.AskLimits))
	for _, limit := range ob.AskLimits {
		limits = append(limits, limit)
	}
	sort.Sort(orderbookv1.ByBestAsk{Limits: limits})
	return limits
}

// Bids returns bid limits sorted by price (descending).
func (ob *Orderbook) Bids() orderbookv1.Limits {
	limits := make(orderbookv1.Limits, 0, len(ob.BidLimits))
	for _, limit := range ob.BidLimits {
		limits = append(limits, limit)
	}
	sort.Sort(orderbookv1.ByBestBid{Limits: limits})
	return limits
}

// Depth returns the aggregated level-2 view: resting volume per price, asks
// ascending and bids descending.
func (ob *Orderbook) Depth() (asks, bids []Level) {
	for _, limit := range ob.Asks() {
		asks = append(asks, Level{Price: limit.Price, Volume: limit.TotalVolume})
	}
	for _, limit := range ob.Bids() {
		bids = append(bids, Level{Price: limit.Price, Volume: limit.TotalVolume})
	}
	return asks, bids
}

// AskTotalVolume returns the total resting ask volume.
func (ob *Orderbook) AskTotalVolume() float64 {
	total := 0.0
	for _, limit := range ob.AskLimits {
		total += limit.TotalVolume
	}
	return total
}

// BidTotalVolume returns the total resting bid volume.
func (ob *Orderbook) BidTotalVolume() float64 {
	total := 0.0
	for _, limit := range ob.BidLimits {
		total += limit.TotalVolume
	}
	return total
}

func (ob *Orderbook) sideLimits(side orderv1.Side) map[float64]*orderbookv1.Limit {
	if side == orderv1.SideBuy {
		return ob.BidLimits
	}
	return ob.AskLimits
}

func (ob *Orderbook) bestOpposing(taker *orderv1.Order) *orderbookv1.Limit {
	if taker.IsBid() {
		return ob.BestAsk()
	}
	return ob.BestBid()
}

// crosses reports whether the taker is marketable against a level at price.
func crosses(taker *orderv1.Order, price float64) bool {
	if taker.Type == orderv1.TypeMarket {
		return true
	}
	if taker.IsBid() {
		return price <= taker.Price
	}
	return price >= taker.Price
}
