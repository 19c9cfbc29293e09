package eventv1

import (
	"strconv"
	"time"
)

// timeLayout matches the log line timestamps down to milliseconds.
const timeLayout = "2006-01-02 15:04:05.000"

// Text renders the event as one pipe-delimited log line, without a trailing
// newline.
func (e Event) Text() string {
	return string(e.AppendText(nil))
}

// AppendText appends the rendered log line to b and returns the extended
// slice. Sinks on the hot path reuse a scratch buffer across calls to avoid
// per-event allocation.
func (e Event) AppendText(b []byte) []byte {
	b = time.Unix(0, e.Timestamp).UTC().AppendFormat(b, timeLayout)
	b = append(b, " | "...)
	b = append(b, e.Kind.String()...)
	b = append(b, ": "...)

	switch e.Kind {
	case KindOrderReceived:
		b = append(b, "id="...)
		b = append(b, e.OrderID.String()...)
		b = append(b, ", instrument="...)
		b = append(b, e.Instrument...)
		b = append(b, ", side="...)
		b = append(b, e.Side...)
		b = append(b, ", type="...)
		b = append(b, e.Type...)
		b = append(b, ", qty="...)
		b = appendFloat(b, e.Quantity)
		b = append(b, ", price="...)
		b = appendFloat(b, e.Price)

	case KindTradeExecuted:
		b = append(b, "id="...)
		b = append(b, e.TradeID.String()...)
		b = append(b, ", instrument="...)
		b = append(b, e.Instrument...)
		b = append(b, ", price="...)
		b = appendFloat(b, e.Price)
		b = append(b, ", qty="...)
		b = appendFloat(b, e.Quantity)
		b = append(b, ", taker_side="...)
		b = append(b, e.TakerSide...)
		b = append(b, ", buy_order_id="...)
		b = append(b, e.BuyOrderID.String()...)
		b = append(b, ", sell_order_id="...)
		b = append(b, e.SellOrderID.String()...)

	case KindOrderFilled:
		b = append(b, "id="...)
		b = append(b, e.OrderID.String()...)
		b = append(b, ", instrument="...)
		b = append(b, e.Instrument...)
		b = append(b, ", type="...)
		b = append(b, e.Type...)
		b = append(b, ", final_status="...)
		b = append(b, e.Status...)
		b = append(b, ", quantity="...)
		b = appendFloat(b, e.Quantity)
		b = append(b, ", quantity_filled="...)
		b = appendFloat(b, e.Quantity-e.Remaining)

	case KindOrderCancelled:
		b = append(b, "id="...)
		b = append(b, e.OrderID.String()...)
		if e.CancelOK {
			b = append(b, " successfully cancelled"...)
		} else {
			b = append(b, " already filled"...)
		}
	}

	return b
}

func appendFloat(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, v, 'g', -1, 64)
}
