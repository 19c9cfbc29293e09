package engine

import (
	"testing"

	"github.com/google/uuid"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	"github.com/tradelat/matchbench/internal/usecase/eventsink"
	"github.com/tradelat/matchbench/pkg/logger"
)

// Benchmark test cases structure
type benchmarkTestCase struct {
	name        string
	setupEngine func(*testing.B) *Engine
	setupData   func(*Engine, *testing.B)
	operation   func(*Engine, int)
}

func setupBenchmarkEngine(b *testing.B) *Engine {
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	if err != nil {
		b.Fatal(err)
	}

	e := New(eventsink.NewNoopSink(), log)
	e.AddMarket(instrument)
	return e
}

func benchLimit(side orderv1.Side, price, qty float64) *orderv1.Order {
	return orderv1.NewLimit(uuid.New(), instrument, side, price, qty)
}

func BenchmarkEngine_ProcessLimitOrder(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "non_crossing_limit_orders",
			setupEngine: setupBenchmarkEngine,
			setupData:   func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				side := orderv1.SideBuy
				price := 49000.0 - float64(i%100)
				if i%2 == 0 {
					side = orderv1.SideSell
					price = 50000.0 + float64(i%100)
				}
				_ = e.ProcessOrder(benchLimit(side, price, 10.0))
			},
		},
		{
			name:        "crossing_limit_orders",
			setupEngine: setupBenchmarkEngine,
			setupData:   func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				// every pair of orders produces a trade at 50000
				side := orderv1.SideSell
				if i%2 == 0 {
					side = orderv1.SideBuy
				}
				_ = e.ProcessOrder(benchLimit(side, 50000.0, 10.0))
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
		})
	}
}

func BenchmarkEngine_ProcessMarketOrder(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "market_orders_with_liquidity",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				// Pre-populate both sides so market orders always trade
				for i := 0; i < 1000; i++ {
					_ = e.ProcessOrder(benchLimit(orderv1.SideSell, 50000.0+float64(i), 10.0))
					_ = e.ProcessOrder(benchLimit(orderv1.SideBuy, 49000.0-float64(i), 10.0))
				}
			},
			operation: func(e *Engine, i int) {
				side := orderv1.SideSell
				if i%2 == 0 {
					side = orderv1.SideBuy
				}
				_ = e.ProcessOrder(orderv1.NewMarket(uuid.New(), instrument, side, 5.0))
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
		})
	}
}

func BenchmarkEngine_MixedOperations(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:        "mixed_orders_realistic_workload",
			setupEngine: setupBenchmarkEngine,
			setupData: func(e *Engine, b *testing.B) {
				for i := 0; i < 50; i++ {
					_ = e.ProcessOrder(benchLimit(orderv1.SideSell, 50000.0+float64(i*50), 10.0))
					_ = e.ProcessOrder(benchLimit(orderv1.SideBuy, 49000.0-float64(i*50), 10.0))
				}
			},
			operation: func(e *Engine, i int) {
				switch i % 10 {
				case 0, 1: // 20% market orders
					side := orderv1.SideSell
					if i%2 == 0 {
						side = orderv1.SideBuy
					}
					_ = e.ProcessOrder(orderv1.NewMarket(uuid.New(), instrument, side, 5.0))
				default: // 80% limit orders
					side := orderv1.SideSell
					if i%2 == 0 {
						side = orderv1.SideBuy
					}
					_ = e.ProcessOrder(benchLimit(side, 50000.0+float64((i%1000)-500), 10.0))
				}
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := tc.setupEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
		})
	}
}

// Memory allocation benchmarks
func BenchmarkEngine_MemoryAllocation(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		side := orderv1.SideBuy
		price := 49000.0 - float64(i%100)
		if i%2 == 0 {
			side = orderv1.SideSell
			price = 50000.0 + float64(i%100)
		}
		_ = engine.ProcessOrder(benchLimit(side, price, 10.0))
	}
}
