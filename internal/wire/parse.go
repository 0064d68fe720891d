package wire

import (
	"strconv"
	"strings"

	"github.com/Pratzz1202/limit-order-book-simulator/internal/engine"
)

// Kind is which dispatcher operation a parsed line maps to.
type Kind int

const (
	KindAdd Kind = iota
	KindCancel
	KindModify
)

// Event is one parsed input line, ready to hand to the dispatcher. Only the
// fields relevant to Kind are populated.
type Event struct {
	Kind      Kind
	Timestamp string

	Order engine.Order // KindAdd

	ID         int   // KindCancel, KindModify
	PriceTicks int64 // KindModify
	Quantity   int   // KindModify
}

// ParseLine parses one input line, trying the human grammar first and the
// compact grammar second. Blank lines and lines whose first non-whitespace
// character is '#' are ignored. Unparseable lines are silently dropped:
// both cases return ok=false with no error, since malformed input is
// recoverable at the stream level, not fatal.
func ParseLine(line string, ticks Ticks) (Event, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Event{}, false
	}
	if ev, ok := parseHuman(trimmed, ticks); ok {
		return ev, true
	}
	return parseCompact(trimmed, ticks)
}

func parseHuman(line string, ticks Ticks) (Event, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Event{}, false
	}
	ts := fields[0]
	word := fields[1]
	rest := fields[2:]

	switch word {
	case "CANCEL":
		id, ok := findAttr(rest, "id=")
		if !ok {
			return Event{}, false
		}
		idv, err := strconv.Atoi(id)
		if err != nil {
			return Event{}, false
		}
		return Event{Kind: KindCancel, Timestamp: ts, ID: idv}, true

	case "MODIFY":
		idStr, haveID := findAttr(rest, "id=")
		pxStr, havePx := findAttr(rest, "price=")
		qtyStr, haveQty := findAttr(rest, "qty=")
		if !haveID || !havePx || !haveQty {
			return Event{}, false
		}
		idv, err1 := strconv.Atoi(idStr)
		px, err2 := strconv.ParseFloat(pxStr, 64)
		qty, err3 := strconv.Atoi(qtyStr)
		if err1 != nil || err2 != nil || err3 != nil {
			return Event{}, false
		}
		return Event{
			Kind:       KindModify,
			Timestamp:  ts,
			ID:         idv,
			PriceTicks: ticks.ToTicks(px),
			Quantity:   qty,
		}, true

	case "LIMIT", "MARKET":
		return parseHumanAdd(ts, word, rest, ticks)

	default:
		return Event{}, false
	}
}

func parseHumanAdd(ts, word string, rest []string, ticks Ticks) (Event, bool) {
	if len(rest) < 2 {
		return Event{}, false
	}
	side, ok := parseSide(rest[0])
	if !ok {
		return Event{}, false
	}

	o := engine.Order{Timestamp: ts, Side: side, TIF: engine.GTC}
	var tail []string

	if word == "LIMIT" {
		if len(rest) < 3 {
			return Event{}, false
		}
		px, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return Event{}, false
		}
		qty, err := strconv.Atoi(rest[2])
		if err != nil {
			return Event{}, false
		}
		o.Type = engine.Limit
		o.PriceTicks = ticks.ToTicks(px)
		o.Quantity = qty
		tail = rest[3:]
	} else {
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return Event{}, false
		}
		o.Type = engine.Market
		o.Quantity = qty
		tail = rest[2:]
	}

	for _, tok := range tail {
		switch {
		case strings.HasPrefix(tok, "id="):
			if v, err := strconv.Atoi(tok[3:]); err == nil {
				o.ID = v
			}
		case strings.HasPrefix(tok, "tif="):
			if tif, ok := parseTIF(tok[4:]); ok {
				o.TIF = tif
			}
		}
	}

	return Event{Kind: KindAdd, Timestamp: ts, Order: o}, true
}

func parseCompact(line string, ticks Ticks) (Event, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return Event{}, false
	}
	ts := parts[1]

	switch parts[0] {
	case "X":
		idv, err := strconv.Atoi(parts[2])
		if err != nil {
			return Event{}, false
		}
		return Event{Kind: KindCancel, Timestamp: ts, ID: idv}, true

	case "M":
		if len(parts) < 5 {
			return Event{}, false
		}
		idv, err1 := strconv.Atoi(parts[2])
		px, err2 := strconv.ParseFloat(parts[3], 64)
		qty, err3 := strconv.Atoi(parts[4])
		if err1 != nil || err2 != nil || err3 != nil {
			return Event{}, false
		}
		return Event{
			Kind:       KindModify,
			Timestamp:  ts,
			ID:         idv,
			PriceTicks: ticks.ToTicks(px),
			Quantity:   qty,
		}, true

	case "A":
		if len(parts) < 6 {
			return Event{}, false
		}
		idv, err1 := strconv.Atoi(parts[2])
		side, ok := parseSide(parts[3])
		px, err2 := strconv.ParseFloat(parts[4], 64)
		qty, err3 := strconv.Atoi(parts[5])
		if err1 != nil || !ok || err2 != nil || err3 != nil {
			return Event{}, false
		}
		o := engine.Order{
			ID:         idv,
			Timestamp:  ts,
			Side:       side,
			Type:       engine.Limit,
			TIF:        engine.GTC,
			PriceTicks: ticks.ToTicks(px),
			Quantity:   qty,
		}
		if len(parts) >= 7 {
			if tif, ok := parseTIF(parts[6]); ok {
				o.TIF = tif
			}
		}
		return Event{Kind: KindAdd, Timestamp: ts, Order: o}, true

	default:
		return Event{}, false
	}
}

func findAttr(tokens []string, prefix string) (string, bool) {
	for _, tok := range tokens {
		if strings.HasPrefix(tok, prefix) {
			v := tok[len(prefix):]
			if v == "" {
				return "", false
			}
			return v, true
		}
	}
	return "", false
}

func parseSide(s string) (engine.Side, bool) {
	switch s {
	case "BUY":
		return engine.Buy, true
	case "SELL":
		return engine.Sell, true
	default:
		return 0, false
	}
}

func parseTIF(s string) (engine.TIF, bool) {
	switch s {
	case "GTC":
		return engine.GTC, true
	case "IOC":
		return engine.IOC, true
	case "FOK":
		return engine.FOK, true
	case "DAY":
		return engine.DAY, true
	default:
		return 0, false
	}
}
