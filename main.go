package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/Pratzz1202/limit-order-book-simulator/internal/config"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/engine"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/obslog"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/sink"
	"github.com/Pratzz1202/limit-order-book-simulator/internal/wire"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(config.ExitCode(err))
	}

	log, err := obslog.New(obslog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Close()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("replay failed")
		log.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *obslog.Logger) error {
	in, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	ticks := wire.Ticks{Scale: cfg.TickScale}

	trades, err := sink.NewTradeWriter(cfg.TradesCSV, ticks)
	if err != nil {
		return fmt.Errorf("open trades csv: %w", err)
	}
	defer trades.Close()

	quotes, err := sink.NewQuoteWriter(cfg.QuotesCSV, ticks)
	if err != nil {
		return fmt.Errorf("open quotes csv: %w", err)
	}
	defer quotes.Close()

	latency, err := sink.NewLatencyWriter(cfg.LatencyCSV)
	if err != nil {
		return fmt.Errorf("open latency csv: %w", err)
	}
	defer latency.Close()

	snapshots, err := sink.NewSnapshotWriter(cfg.SnapshotDir, cfg.SnapshotEvery, cfg.Depth, ticks)
	if err != nil {
		return fmt.Errorf("open snapshot dir: %w", err)
	}

	book := engine.NewBook()
	book.OnTrade = func(t engine.Trade) {
		if err := trades.Write(t); err != nil {
			log.Warn().Err(err).Msg("failed to write trade row")
		}
		log.Debug().
			Str("trade_id", t.ID()).
			Str("ts", t.Timestamp).
			Int64("price_ticks", t.PriceTicks).
			Int("qty", t.Quantity).
			Int("buy_id", t.BuyID).
			Int("sell_id", t.SellID).
			Msg("trade")
	}
	book.OnQuote = func(ts string, q engine.Quote) {
		if err := quotes.Write(ts, q); err != nil {
			log.Warn().Err(err).Msg("failed to write quote row")
		}
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		start := time.Now()
		processed := processLine(book, line, ticks, log)
		elapsed := time.Since(start)

		if err := latency.Write(elapsed); err != nil {
			log.Warn().Err(err).Msg("failed to write latency sample")
		}
		if !processed {
			continue
		}
		if err := snapshots.Tick(book); err != nil {
			log.Warn().Err(err).Msg("failed to write snapshot")
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	printFinalSummary(book, ticks)
	return nil
}

// processLine parses one input line and dispatches it to the book. It
// reports whether the line was an event; blank, comment and unparseable
// lines report false.
func processLine(book *engine.Book, line string, ticks wire.Ticks, log *obslog.Logger) bool {
	ev, ok := wire.ParseLine(line, ticks)
	if !ok {
		if len(line) > 0 {
			log.Debug().Str("line", line).Msg("dropped malformed or unrecognized input line")
		}
		return false
	}

	switch ev.Kind {
	case wire.KindAdd:
		o := ev.Order
		book.Add(&o)
	case wire.KindCancel:
		if !book.Cancel(ev.ID, ev.Timestamp) {
			log.Warn().Int("id", ev.ID).Msg("cancel: order not found")
		}
	case wire.KindModify:
		if !book.Modify(ev.ID, ev.PriceTicks, ev.Quantity, ev.Timestamp) {
			log.Warn().Int("id", ev.ID).Msg("modify: order not found")
		}
	}
	return true
}

func printFinalSummary(book *engine.Book, ticks wire.Ticks) {
	q := book.Top()
	if !q.HasBid || !q.HasAsk {
		fmt.Println("No full top-of-book at end.")
		return
	}
	bid := ticks.ToDecimal(q.BidPx)
	ask := ticks.ToDecimal(q.AskPx)
	fmt.Printf("Final BestBid %.2f (%d), BestAsk %.2f (%d)\n", bid, q.BidQty, ask, q.AskQty)
	fmt.Printf("Spread %.2f Mid %.2f\n", ask-bid, (bid+ask)/2)
}
