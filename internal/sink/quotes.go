package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Pratzz1202/limit-order-book-simulator/internal/engine"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/wire"
)

// QuoteWriter appends one row per observable top-of-book change, header
// timestamp,best_bid,bid_qty,best_ask,ask_qty,spread,mid. When a side is
// absent its price, spread and mid cells are written empty.
type QuoteWriter struct {
	f     *os.File
	w     *csv.Writer
	ticks wire.Ticks
}

// NewQuoteWriter opens path and writes the header row. An empty path
// disables the sink.
func NewQuoteWriter(path string, ticks wire.Ticks) (*QuoteWriter, error) {
	if path == "" {
		return &QuoteWriter{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{"timestamp", "best_bid", "bid_qty", "best_ask", "ask_qty", "spread", "mid"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &QuoteWriter{f: f, w: w, ticks: ticks}, nil
}

// Write appends one quote-change row.
func (q *QuoteWriter) Write(timestamp string, quote engine.Quote) error {
	if q.w == nil {
		return nil
	}

	var bidPx, askPx, spread, mid string
	if quote.HasBid {
		bidPx = formatDecimal(q.ticks.ToDecimal(quote.BidPx))
	}
	if quote.HasAsk {
		askPx = formatDecimal(q.ticks.ToDecimal(quote.AskPx))
	}
	if quote.HasBid && quote.HasAsk {
		bid := q.ticks.ToDecimal(quote.BidPx)
		ask := q.ticks.ToDecimal(quote.AskPx)
		spread = formatDecimal(ask - bid)
		mid = formatDecimal((bid + ask) / 2)
	}

	row := []string{
		timestamp,
		bidPx,
		fmt.Sprintf("%d", quote.BidQty),
		askPx,
		fmt.Sprintf("%d", quote.AskQty),
		spread,
		mid,
	}
	if err := q.w.Write(row); err != nil {
		return err
	}
	q.w.Flush()
	return q.w.Error()
}

// Close flushes and releases the underlying file, if any.
func (q *QuoteWriter) Close() error {
	if q.f == nil {
		return nil
	}
	q.w.Flush()
	return q.f.Close()
}
