package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelat/matchbench/internal/app/engine"
	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	"github.com/tradelat/matchbench/internal/usecase/eventsink"
	"github.com/tradelat/matchbench/internal/usecase/latency"
	"github.com/tradelat/matchbench/pkg/logger"
)

const header = "operation,instrument,side,order_type,quantity,price,order_id\n"

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return log
}

func writeOperationsFile(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "operations.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+rows), 0o644))
	return path
}

func TestLoadOperations(t *testing.T) {
	buyID := uuid.New()
	sellID := uuid.New()
	mktID := uuid.New()

	rows := fmt.Sprintf(
		"NEW,BTC-USD,Buy,Limit,5,100.5,%s\n"+
			"NEW,BTC-USD,Sell,Limit,5,101,%s\n"+
			"NEW,ETH-USD,Sell,Market,50,,%s\n"+
			"CANCEL,BTC-USD,,,,,%s\n",
		buyID, sellID, mktID, buyID,
	)
	path := writeOperationsFile(t, rows)

	ops, err := LoadOperations(path, testLogger(t))
	require.NoError(t, err)
	require.Len(t, ops, 4)

	assert.Equal(t, Operation{
		Kind:       OpNew,
		Instrument: "BTC-USD",
		Side:       orderv1.SideBuy,
		Type:       orderv1.TypeLimit,
		Quantity:   5,
		Price:      100.5,
		OrderID:    buyID,
	}, ops[0])

	assert.Equal(t, OpNew, ops[2].Kind)
	assert.Equal(t, orderv1.TypeMarket, ops[2].Type)
	assert.Equal(t, 50.0, ops[2].Quantity)
	assert.Equal(t, 0.0, ops[2].Price)

	assert.Equal(t, Operation{Kind: OpCancel, Instrument: "BTC-USD", OrderID: buyID}, ops[3])
}

func TestLoadOperations_SkipsMalformedRows(t *testing.T) {
	good := uuid.New()
	rows := fmt.Sprintf(
		"NEW,BTC-USD,Buy,Limit,5,100.5,%s\n"+
			"NEW,BTC-USD,Buy,Limit,not-a-number,100.5,%s\n"+
			"NEW,BTC-USD,Sideways,Limit,5,100.5,%s\n"+
			"NEW,BTC-USD,Buy,Limit,5,100.5,not-a-uuid\n"+
			"HOLD,BTC-USD,Buy,Limit,5,100.5,%s\n",
		good, uuid.New(), uuid.New(), uuid.New(),
	)
	path := writeOperationsFile(t, rows)

	ops, err := LoadOperations(path, testLogger(t))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, good, ops[0].OrderID)
}

func TestLoadOperations_MissingFileIsFatal(t *testing.T) {
	_, err := LoadOperations(filepath.Join(t.TempDir(), "nope.csv"), testLogger(t))
	require.Error(t, err)
}

func TestLoadOperations_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	_, err := LoadOperations(path, testLogger(t))
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestRunner_Run(t *testing.T) {
	log := testLogger(t)
	e := engine.New(eventsink.NewNoopSink(), log)
	rec := latency.NewRecorder()

	buyID := uuid.New()
	ops := []Operation{
		{Kind: OpNew, Instrument: "BTC-USD", Side: orderv1.SideBuy, Type: orderv1.TypeLimit, Quantity: 5, Price: 100, OrderID: buyID},
		{Kind: OpNew, Instrument: "BTC-USD", Side: orderv1.SideSell, Type: orderv1.TypeLimit, Quantity: 5, Price: 100, OrderID: uuid.New()},
		// market for a brand-new instrument: book created on first sight
		{Kind: OpNew, Instrument: "ETH-USD", Side: orderv1.SideSell, Type: orderv1.TypeMarket, Quantity: 10, OrderID: uuid.New()},
		// cancel of an already-filled order is a recorded non-event
		{Kind: OpCancel, Instrument: "BTC-USD", OrderID: buyID},
	}

	runner := NewRunner(e, rec, log)
	require.NoError(t, runner.Run(ops))

	assert.Equal(t, int64(4), rec.Count(), "every operation is timed")
	assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, e.Instruments())

	asks, bids, err := e.Depth("BTC-USD")
	require.NoError(t, err)
	assert.Empty(t, asks)
	assert.Empty(t, bids)
}

func TestRunner_SkipsRejectedOperations(t *testing.T) {
	log := testLogger(t)
	e := engine.New(eventsink.NewNoopSink(), log)
	rec := latency.NewRecorder()

	ops := []Operation{
		{Kind: OpNew, Instrument: "BTC-USD", Side: orderv1.SideBuy, Type: orderv1.TypeLimit, Quantity: 0, Price: 100, OrderID: uuid.New()},
		{Kind: OpNew, Instrument: "BTC-USD", Side: orderv1.SideBuy, Type: orderv1.TypeLimit, Quantity: 5, Price: 100, OrderID: uuid.New()},
	}

	runner := NewRunner(e, rec, log)
	require.NoError(t, runner.Run(ops))

	_, bids, err := e.Depth("BTC-USD")
	require.NoError(t, err)
	require.Len(t, bids, 1, "valid order after a rejected one still runs")
}
