// Package replay loads a recorded CSV operations file and drives it through
// the engine, timing each operation.
package replay

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	orderv1 "github.com/tradelat/matchbench/internal/domain/order/v1"
	"github.com/tradelat/matchbench/pkg/logger"
)

// Kind is the operation column of the input file.
type Kind string

const (
	OpNew    Kind = "NEW"
	OpCancel Kind = "CANCEL"
)

// Operation is one parsed row of the operations file. CANCEL rows only use
// Instrument and OrderID.
type Operation struct {
	Kind       Kind
	Instrument string
	Side       orderv1.Side
	Type       orderv1.Type
	Quantity   float64
	Price      float64
	OrderID    uuid.UUID
}

var ErrBadHeader = errors.New("unexpected operations file header")

var expectedHeader = []string{"operation", "instrument", "side", "order_type", "quantity", "price", "order_id"}

// LoadOperations reads the whole operations file up front, so parsing never
// shows up inside the measured run. Malformed rows are logged and skipped;
// a missing or unreadable file is fatal.
func LoadOperations(path string, log *logger.Logger) ([]Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open operations file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var ops []Operation
	line := 1
	skipped := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Warn("skipping malformed row", logger.Field{Key: "line", Value: line}, logger.Field{Key: "error", Value: err.Error()})
			skipped++
			continue
		}

		op, err := parseRow(record)
		if err != nil {
			log.Warn("skipping malformed row", logger.Field{Key: "line", Value: line}, logger.Field{Key: "error", Value: err.Error()})
			skipped++
			continue
		}
		ops = append(ops, op)
	}

	if skipped > 0 {
		log.Warn("operations file had malformed rows", logger.Field{Key: "skipped", Value: skipped})
	}
	return ops, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("%w: %v", ErrBadHeader, header)
	}
	for i, col := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return fmt.Errorf("%w: %v", ErrBadHeader, header)
		}
	}
	return nil
}

func parseRow(record []string) (Operation, error) {
	var op Operation
	if len(record) != len(expectedHeader) {
		return op, fmt.Errorf("want %d fields, got %d", len(expectedHeader), len(record))
	}

	id, err := uuid.Parse(strings.TrimSpace(record[6]))
	if err != nil {
		return op, fmt.Errorf("order_id: %w", err)
	}
	op.OrderID = id
	op.Instrument = strings.TrimSpace(record[1])
	if op.Instrument == "" {
		return op, errors.New("empty instrument")
	}

	switch Kind(strings.ToUpper(strings.TrimSpace(record[0]))) {
	case OpCancel:
		op.Kind = OpCancel
		return op, nil
	case OpNew:
		op.Kind = OpNew
	default:
		return op, fmt.Errorf("unknown operation %q", record[0])
	}

	switch {
	case strings.EqualFold(record[2], string(orderv1.SideBuy)):
		op.Side = orderv1.SideBuy
	case strings.EqualFold(record[2], string(orderv1.SideSell)):
		op.Side = orderv1.SideSell
	default:
		return op, fmt.Errorf("unknown side %q", record[2])
	}

	switch {
	case strings.EqualFold(record[3], string(orderv1.TypeLimit)):
		op.Type = orderv1.TypeLimit
	case strings.EqualFold(record[3], string(orderv1.TypeMarket)):
		op.Type = orderv1.TypeMarket
	default:
		return op, fmt.Errorf("unknown order_type %q", record[3])
	}

	op.Quantity, err = strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return op, fmt.Errorf("quantity: %w", err)
	}

	if op.Type == orderv1.TypeLimit {
		op.Price, err = strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
		if err != nil {
			return op, fmt.Errorf("price: %w", err)
		}
	}
	return op, nil
}
