package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tradelat/matchbench/internal/app/engine"
	eventsinkv1 "github.com/tradelat/matchbench/internal/domain/eventsink/v1"
	"github.com/tradelat/matchbench/internal/usecase/eventsink"
	"github.com/tradelat/matchbench/internal/usecase/latency"
	"github.com/tradelat/matchbench/internal/usecase/replay"
	"github.com/tradelat/matchbench/pkg/config"
	"github.com/tradelat/matchbench/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <mode>\nmodes: %v\n", os.Args[0], eventsinkv1.Modes())
		os.Exit(1)
	}

	mode, err := eventsinkv1.ParseMode(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nmodes: %v\n", err, eventsinkv1.Modes())
		os.Exit(1)
	}

	ops, err := replay.LoadOperations(cfg.OperationsFile, log)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "load_operations"})
		os.Exit(1)
	}

	sink, err := eventsink.New(mode, cfg.Sink, log)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_sink"})
		os.Exit(1)
	}

	log.Info("replay starting",
		logger.Field{Key: "mode", Value: string(mode)},
		logger.Field{Key: "operations", Value: len(ops)},
	)

	rec := latency.NewRecorder()
	eng := engine.New(sink, log)
	runner := replay.NewRunner(eng, rec, log)

	start := time.Now()
	if err := runner.Run(ops); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "replay"})
		sink.Close()
		os.Exit(1)
	}
	elapsed := time.Since(start)

	closeStart := time.Now()
	closeErr := sink.Close()
	closeElapsed := time.Since(closeStart)
	if closeErr != nil {
		// the run itself completed; some events were lost on the way out
		log.Warn("sink closed with error", logger.Field{Key: "error", Value: closeErr.Error()})
	}

	for _, instrument := range eng.Instruments() {
		asks, bids, err := eng.Depth(instrument)
		if err != nil {
			continue
		}
		fmt.Printf("\n%s final depth (%d ask / %d bid levels)\n", instrument, len(asks), len(bids))
		for _, lvl := range asks {
			fmt.Printf("  ask %12g  x %g\n", lvl.Price, lvl.Volume)
		}
		for _, lvl := range bids {
			fmt.Printf("  bid %12g  x %g\n", lvl.Price, lvl.Volume)
		}
	}

	fmt.Println()
	if err := rec.WriteReport(os.Stdout, string(mode)); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "write_report"})
	}
	fmt.Printf("\nrun total: %s, sink close: %s\n", elapsed.Round(time.Microsecond), closeElapsed.Round(time.Microsecond))
}
