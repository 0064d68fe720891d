package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pratzz1202/limit-order-book-simulator/internal/engine"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/wire"
)

// SnapshotWriter dumps periodic text snapshots of the book to a directory,
// one file every N processed events.
type SnapshotWriter struct {
	dir    string
	every  int
	depth  int
	ticks  wire.Ticks
	tick   int
}

// NewSnapshotWriter configures a snapshot dumper. every == 0 disables
// snapshotting entirely. The directory is created eagerly so a bad path
// fails fast instead of silently dropping every snapshot.
func NewSnapshotWriter(dir string, every, depth int, ticks wire.Ticks) (*SnapshotWriter, error) {
	if every <= 0 || dir == "" {
		return &SnapshotWriter{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotWriter{dir: dir, every: every, depth: depth, ticks: ticks}, nil
}

// Tick advances the event counter and, if the cadence is reached, renders
// and writes the next snapshot file.
func (s *SnapshotWriter) Tick(book *engine.Book) error {
	if s.every <= 0 {
		return nil
	}
	s.tick++
	if s.tick%s.every != 0 {
		return nil
	}
	name := fmt.Sprintf("snapshot_%09d.txt", s.tick)
	body := RenderSnapshot(book, s.depth, s.ticks)
	return os.WriteFile(filepath.Join(s.dir, name), []byte(body), 0o644)
}

// RenderSnapshot renders asks (best first) then bids (best first) up to
// depth, followed by a single top-of-book summary line.
func RenderSnapshot(book *engine.Book, depth int, ticks wire.Ticks) string {
	var b strings.Builder
	b.WriteString("=== SNAPSHOT ===\n")
	b.WriteString("----- ORDER BOOK -----\n")

	printed := 0
	book.Asks.Ascend(func(lvl *engine.PriceLevel) bool {
		if printed >= depth {
			return false
		}
		fmt.Fprintf(&b, "ASK %.2f x %d\n", ticks.ToDecimal(lvl.Price), lvl.TotalQty())
		printed++
		return true
	})

	printed = 0
	book.Bids.Ascend(func(lvl *engine.PriceLevel) bool {
		if printed >= depth {
			return false
		}
		fmt.Fprintf(&b, "BID %.2f x %d\n", ticks.ToDecimal(lvl.Price), lvl.TotalQty())
		printed++
		return true
	})

	q := book.Top()
	if q.HasBid && q.HasAsk {
		bid := ticks.ToDecimal(q.BidPx)
		ask := ticks.ToDecimal(q.AskPx)
		fmt.Fprintf(&b, "BestBid %.2f (%d), BestAsk %.2f (%d) | Spread %.2f | Mid %.2f\n",
			bid, q.BidQty, ask, q.AskQty, ask-bid, (bid+ask)/2)
	} else {
		b.WriteString("No full top-of-book.\n")
	}
	b.WriteString("================\n")
	return b.String()
}
