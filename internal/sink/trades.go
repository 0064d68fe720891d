// Package sink implements the external collaborators the engine never
// talks to directly: CSV writers for trades and quote changes, the
// snapshot directory dumper, and the per-event latency sample file.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Pratzz1202/limit-order-book-simulator/internal/engine"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/wire"
)

// TradeWriter appends one row per trade to a CSV file, header
// timestamp,price,qty,buy_id,sell_id.
type TradeWriter struct {
	f     *os.File
	w     *csv.Writer
	ticks wire.Ticks
}

// NewTradeWriter opens path and writes the header row. An empty path
// disables the sink; Write and Close are then no-ops.
func NewTradeWriter(path string, ticks wire.Ticks) (*TradeWriter, error) {
	if path == "" {
		return &TradeWriter{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "price", "qty", "buy_id", "sell_id"}); err != nil {
		f.Close()
		return nil, err
	}
	return &TradeWriter{f: f, w: w, ticks: ticks}, nil
}

// Write appends one trade row, flushing immediately (replay workloads are
// not high enough throughput to justify buffering across events, and an
// unflushed writer would lose rows on an unclean exit).
func (t *TradeWriter) Write(trade engine.Trade) error {
	if t.w == nil {
		return nil
	}
	row := []string{
		trade.Timestamp,
		formatDecimal(t.ticks.ToDecimal(trade.PriceTicks)),
		fmt.Sprintf("%d", trade.Quantity),
		fmt.Sprintf("%d", trade.BuyID),
		fmt.Sprintf("%d", trade.SellID),
	}
	if err := t.w.Write(row); err != nil {
		return err
	}
	t.w.Flush()
	return t.w.Error()
}

// Close flushes and releases the underlying file, if any.
func (t *TradeWriter) Close() error {
	if t.f == nil {
		return nil
	}
	t.w.Flush()
	return t.f.Close()
}

func formatDecimal(v float64) string {
	return fmt.Sprintf("%g", v)
}
