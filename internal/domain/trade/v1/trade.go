package tradev1

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
)

// Trade records one execution between a resting (maker) order and an
// incoming (taker) order. Price is always the maker's price. A trade is
// immutable once created.
type Trade struct {
	ID          ulid.ULID    `json:"id"`
	Instrument  string       `json:"instrument"`
	Price       float64      `json:"price"`
	Quantity    float64      `json:"quantity"`
	TakerSide   orderv1.Side `json:"takerSide"`
	BuyOrderID  uuid.UUID    `json:"buyOrderID"`
	SellOrderID uuid.UUID    `json:"sellOrderID"`
	Timestamp   int64        `json:"timestamp"`
}

// New creates a trade between the given buy and sell orders.
func New(id ulid.ULID, instrument string, price, quantity float64, buyOrderID, sellOrderID uuid.UUID, takerSide orderv1.Side, timestamp int64) Trade {
	return Trade{
		ID:          id,
		Instrument:  instrument,
		Price:       price,
		Quantity:    quantity,
		TakerSide:   takerSide,
		BuyOrderID:  buyOrderID,
		SellOrderID: sellOrderID,
		Timestamp:   timestamp,
	}
}
