// Command datagen writes a synthetic operations file: a book-building prefix
// of passive limit orders followed by a weighted mix of limit orders, market
// orders and cancels against the orders generated so far.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	midPrice       = 100.0
	spread         = 0.5
	tick           = 0.05
	aggressiveProb = 0.1
	prefixOrders   = 3000
)

func main() {
	out := flag.String("out", "operations.csv", "output file")
	ops := flag.Int("ops", 100000, "number of operations after the book-building prefix")
	instrument := flag.String("instrument", "BTC-USD", "instrument name")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)
	g := &generator{rng: rng, w: w, instrument: *instrument}

	if err := w.Write([]string{"operation", "instrument", "side", "order_type", "quantity", "price", "order_id"}); err != nil {
		fatal(f, err)
	}

	for i := 0; i < prefixOrders; i++ {
		if err := g.limitOrder(false); err != nil {
			fatal(f, err)
		}
	}

	for i := 0; i < *ops; i++ {
		var err error
		switch r := rng.Float64(); {
		case r < 0.55:
			err = g.limitOrder(rng.Float64() < aggressiveProb)
		case r < 0.70:
			err = g.marketOrder()
		default:
			err = g.cancel()
		}
		if err != nil {
			fatal(f, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		fatal(f, err)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d operations to %s (seed %d)\n", prefixOrders+*ops, *out, *seed)
}

type generator struct {
	rng        *rand.Rand
	w          *csv.Writer
	instrument string
	live       []uuid.UUID
}

// limitOrder emits a NEW limit row. Passive orders price away from the mid;
// aggressive ones cross it and usually trade on arrival.
func (g *generator) limitOrder(aggressive bool) error {
	id := uuid.New()
	side := "Buy"
	sign := -1.0
	if g.rng.Intn(2) == 0 {
		side = "Sell"
		sign = 1.0
	}

	offset := spread/2 + tick*float64(g.rng.Intn(100))
	if aggressive {
		sign = -sign
	}
	price := roundTick(midPrice + sign*offset)
	qty := float64(1 + g.rng.Intn(100))

	g.live = append(g.live, id)
	return g.w.Write([]string{
		"NEW", g.instrument, side, "Limit",
		formatFloat(qty), formatFloat(price), id.String(),
	})
}

func (g *generator) marketOrder() error {
	side := "Buy"
	if g.rng.Intn(2) == 0 {
		side = "Sell"
	}
	qty := float64(50 + g.rng.Intn(451))
	return g.w.Write([]string{
		"NEW", g.instrument, side, "Market",
		formatFloat(qty), "", uuid.New().String(),
	})
}

// cancel targets a random previously generated limit order. The target may
// already be filled by the time the row replays, which is exactly the
// failed-cancel path the benchmark wants to exercise.
func (g *generator) cancel() error {
	if len(g.live) == 0 {
		return g.limitOrder(false)
	}
	i := g.rng.Intn(len(g.live))
	id := g.live[i]
	g.live[i] = g.live[len(g.live)-1]
	g.live = g.live[:len(g.live)-1]

	return g.w.Write([]string{"CANCEL", g.instrument, "", "", "", "", id.String()})
}

func roundTick(p float64) float64 {
	return math.Round(p/tick) * tick
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fatal(f *os.File, err error) {
	f.Close()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
