package engine

// Add dispatches an ADD event. If o.ID is zero the book assigns the next
// monotonic id before any other work. The order is matched as aggressor
// first; any residual rests only if it is a LIMIT order whose TIF allows
// resting (GTC or DAY — IOC and FOK never rest, and a FOK order that
// cannot be fully filled trades zero). A quote-change is emitted if the
// observable top-of-book moved.
func (b *Book) Add(o *Order) {
	if o.ID == 0 {
		b.nextOrderID++
		o.ID = b.nextOrderID
	}

	b.match(o)

	if o.Quantity > 0 && o.Type == Limit && o.TIF != IOC && o.TIF != FOK {
		b.rest(o)
	}

	b.refreshTop()
	b.emitQuoteIfChanged(o.Timestamp)
}

// Cancel dispatches a CANCEL event. Reports false ("not found") and leaves
// the book untouched if id is not currently resting.
func (b *Book) Cancel(id int, timestamp string) bool {
	if _, ok := b.derest(id); !ok {
		return false
	}
	b.refreshTop()
	b.emitQuoteIfChanged(timestamp)
	return true
}

// Modify dispatches a MODIFY event. A modify is not an in-place edit: it
// cancels the resting order, re-prices and re-sizes it, and re-enters it at
// the tail of the FIFO at the new price — losing time priority even when
// the price is unchanged. newQty <= 0 is treated as a CANCEL. The order's
// TIF carries through unchanged.
func (b *Book) Modify(id int, newPriceTicks int64, newQty int, timestamp string) bool {
	if newQty <= 0 {
		return b.Cancel(id, timestamp)
	}

	order, ok := b.derest(id)
	if !ok {
		return false
	}

	order.PriceTicks = newPriceTicks
	order.Quantity = newQty

	b.match(order)

	if order.Quantity > 0 {
		b.rest(order)
	}

	b.refreshTop()
	b.emitQuoteIfChanged(timestamp)
	return true
}
