package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradelat/matchbench/internal/app/engine"
	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	orderbookv1 "github.com/tradelat/matchbench/internal/domain/orderbook/v1"
	"github.com/tradelat/matchbench/internal/usecase/latency"
	"github.com/tradelat/matchbench/pkg/logger"
)

// Runner replays operations sequentially through the engine. Each engine
// call is timed individually; everything else (market creation, order
// construction, recording) stays outside the measurement.
type Runner struct {
	engine *engine.Engine
	rec    *latency.Recorder
	log    *logger.Logger
}

func NewRunner(e *engine.Engine, rec *latency.Recorder, log *logger.Logger) *Runner {
	return &Runner{engine: e, rec: rec, log: log}
}

// Run replays ops in order. Invalid operations are logged and skipped so a
// bad row cannot abort a long run; sink failures are fatal because every
// event after one would be lost silently.
func (r *Runner) Run(ops []Operation) error {
	for i := range ops {
		op := &ops[i]
		r.engine.AddMarket(op.Instrument)

		var err error
		switch op.Kind {
		case OpNew:
			var o *orderv1.Order
			if op.Type == orderv1.TypeMarket {
				o = orderv1.NewMarket(op.OrderID, op.Instrument, op.Side, op.Quantity)
			} else {
				o = orderv1.NewLimit(op.OrderID, op.Instrument, op.Side, op.Price, op.Quantity)
			}
			start := time.Now()
			err = r.engine.ProcessOrder(o)
			r.rec.Record(time.Since(start))

		case OpCancel:
			start := time.Now()
			_, err = r.engine.CancelOrderByID(op.Instrument, op.OrderID)
			r.rec.Record(time.Since(start))
		}

		if err == nil {
			continue
		}
		if isRejection(err) {
			r.log.Warn("operation rejected", logger.Field{Key: "index", Value: i}, logger.Field{Key: "error", Value: err.Error()})
			continue
		}
		return fmt.Errorf("operation %d: %w", i, err)
	}
	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, orderbookv1.ErrInvalidQuantity) ||
		errors.Is(err, orderbookv1.ErrInvalidPrice) ||
		errors.Is(err, orderbookv1.ErrDuplicateOrder) ||
		errors.Is(err, orderbookv1.ErrNilOrder)
}
