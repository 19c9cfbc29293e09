package orderbookv1

import (
	"github.com/google/uuid"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
)

// Match represents one fill between a resting maker order and an incoming
// taker order. Price is the maker's price, never the taker's.
type Match struct {
	Maker    *orderv1.Order `json:"maker"`
	Taker    *orderv1.Order `json:"taker"`
	Price    float64        `json:"price"`
	Quantity float64        `json:"quantity"`
}

// MakerIsFilled checks if the maker order is fully filled.
func (m *Match) MakerIsFilled() bool {
	return m.Maker.IsFilled()
}

// TakerIsFilled checks if the taker order is fully filled.
func (m *Match) TakerIsFilled() bool {
	return m.Taker.IsFilled()
}

// BuySellOrderIDs resolves the buy-side and sell-side order ids of the match.
func (m *Match) BuySellOrderIDs() (buy, sell uuid.UUID) {
	if m.Taker.IsBid() {
		return m.Taker.ID, m.Maker.ID
	}
	return m.Maker.ID, m.Taker.ID
}
