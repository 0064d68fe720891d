package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Pratzz1202/limit-order-book-simulator/internal/engine"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/wire"
)

var cents = wire.Ticks{Scale: 100}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestTradeWriterRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	w, err := NewTradeWriter(path, cents)
	if err != nil {
		t.Fatalf("NewTradeWriter: %v", err)
	}

	b := engine.NewBook()
	b.OnTrade = func(tr engine.Trade) {
		if err := w.Write(tr); err != nil {
			t.Fatalf("write trade: %v", err)
		}
	}
	b.Add(&engine.Order{ID: 1, Timestamp: "t1", Side: engine.Sell, Type: engine.Limit, PriceTicks: 10050, Quantity: 10})
	b.Add(&engine.Order{ID: 2, Timestamp: "t2", Side: engine.Buy, Type: engine.Limit, PriceTicks: 10050, Quantity: 4})

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "timestamp,price,qty,buy_id,sell_id" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "t2,100.5,4,2,1" {
		t.Fatalf("unexpected trade row: %q", lines[1])
	}
}

func TestQuoteWriterEmptyCellsWhenSideAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")
	w, err := NewQuoteWriter(path, cents)
	if err != nil {
		t.Fatalf("NewQuoteWriter: %v", err)
	}

	// Bid only: ask price, spread and mid cells must be empty.
	if err := w.Write("t1", engine.Quote{HasBid: true, BidPx: 10000, BidQty: 5}); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Both sides present.
	if err := w.Write("t2", engine.Quote{
		HasBid: true, BidPx: 10000, BidQty: 5,
		HasAsk: true, AskPx: 10100, AskQty: 3,
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := readLines(t, path)
	if lines[0] != "timestamp,best_bid,bid_qty,best_ask,ask_qty,spread,mid" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "t1,100,5,,0,," {
		t.Fatalf("unexpected one-sided row: %q", lines[1])
	}
	if lines[2] != "t2,100,5,101,3,1,100.5" {
		t.Fatalf("unexpected two-sided row: %q", lines[2])
	}
}

func TestSnapshotWriterCadenceAndNaming(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSnapshotWriter(dir, 3, 10, cents)
	if err != nil {
		t.Fatalf("NewSnapshotWriter: %v", err)
	}

	b := engine.NewBook()
	b.Add(&engine.Order{ID: 1, Side: engine.Sell, Type: engine.Limit, PriceTicks: 10100, Quantity: 5})
	b.Add(&engine.Order{ID: 2, Side: engine.Buy, Type: engine.Limit, PriceTicks: 10000, Quantity: 3})

	for i := 0; i < 7; i++ {
		if err := w.Tick(b); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "snapshot_000000003.txt" || names[1] != "snapshot_000000006.txt" {
		t.Fatalf("unexpected snapshot files: %v", names)
	}

	body := string(mustRead(t, filepath.Join(dir, names[0])))
	for _, want := range []string{
		"ASK 101.00 x 5",
		"BID 100.00 x 3",
		"BestBid 100.00 (3), BestAsk 101.00 (5)",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("snapshot body missing %q:\n%s", want, body)
		}
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return raw
}

func TestSnapshotWriterDisabledWhenCadenceZero(t *testing.T) {
	w, err := NewSnapshotWriter(t.TempDir(), 0, 10, cents)
	if err != nil {
		t.Fatalf("NewSnapshotWriter: %v", err)
	}
	if err := w.Tick(engine.NewBook()); err != nil {
		t.Fatalf("tick on disabled writer: %v", err)
	}
}

func TestSnapshotDepthLimit(t *testing.T) {
	b := engine.NewBook()
	for i := 0; i < 5; i++ {
		b.Add(&engine.Order{ID: i + 1, Side: engine.Sell, Type: engine.Limit, PriceTicks: int64(10100 + i), Quantity: 1})
	}
	body := RenderSnapshot(b, 2, cents)
	if got := strings.Count(body, "ASK "); got != 2 {
		t.Fatalf("expected depth-limited render with 2 ask lines, got %d:\n%s", got, body)
	}
	if !strings.Contains(body, "ASK 101.00 x 1") || !strings.Contains(body, "ASK 101.01 x 1") {
		t.Fatalf("expected best-first asks:\n%s", body)
	}
}

func TestLatencyWriterRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency.csv")
	w, err := NewLatencyWriter(path)
	if err != nil {
		t.Fatalf("NewLatencyWriter: %v", err)
	}
	if err := w.Write(1500 * time.Nanosecond); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 || lines[0] != "ns" || lines[1] != "1500" {
		t.Fatalf("unexpected latency file: %q", lines)
	}
}

func TestDisabledSinksAreNoOps(t *testing.T) {
	tw, err := NewTradeWriter("", cents)
	if err != nil {
		t.Fatalf("NewTradeWriter: %v", err)
	}
	if err := tw.Write(engine.Trade{}); err != nil {
		t.Fatalf("disabled trade write: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("disabled trade close: %v", err)
	}

	qw, err := NewQuoteWriter("", cents)
	if err != nil {
		t.Fatalf("NewQuoteWriter: %v", err)
	}
	if err := qw.Write("t", engine.Quote{}); err != nil {
		t.Fatalf("disabled quote write: %v", err)
	}

	lw, err := NewLatencyWriter("")
	if err != nil {
		t.Fatalf("NewLatencyWriter: %v", err)
	}
	if err := lw.Write(time.Microsecond); err != nil {
		t.Fatalf("disabled latency write: %v", err)
	}
}
