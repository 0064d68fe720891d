package engine

import (
	"container/list"

	"github.com/google/btree"
)

// bookItem is the btree.Item stored in a BookSide's tree. less captures the
// side's ordering: for bids it sorts highest price first, for asks lowest
// price first, so that in both cases tree.Min() is the best level and
// Ascend walks from the inside of the market outward.
type bookItem struct {
	price int64
	level *PriceLevel
	less  func(a, b int64) bool
}

func (i *bookItem) Less(than btree.Item) bool {
	o := than.(*bookItem)
	return i.less(i.price, o.price)
}

// BookSide is an ordered price -> PriceLevel map for one side of the book,
// backed by a B-tree so lookup, insert and erase of a level are O(log n)
// and best-to-worst iteration proceeds in O(1) per step.
type BookSide struct {
	tree *btree.BTree
	less func(a, b int64) bool
}

func newBookSide(less func(a, b int64) bool) *BookSide {
	return &BookSide{tree: btree.New(32), less: less}
}

func (s *BookSide) query(price int64) *bookItem {
	return &bookItem{price: price, less: s.less}
}

// Get looks up the level resting at price, if any.
func (s *BookSide) Get(price int64) (*PriceLevel, bool) {
	item := s.tree.Get(s.query(price))
	if item == nil {
		return nil, false
	}
	return item.(*bookItem).level, true
}

// getOrCreate returns the level at price, creating and inserting an empty
// one lazily on first rest at that price.
func (s *BookSide) getOrCreate(price int64) *PriceLevel {
	if lvl, ok := s.Get(price); ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	s.tree.ReplaceOrInsert(&bookItem{price: price, level: lvl, less: s.less})
	return lvl
}

// deleteLevel erases the level at price, regardless of whether it is empty;
// callers must only call this once the level's FIFO is empty.
func (s *BookSide) deleteLevel(price int64) {
	s.tree.Delete(s.query(price))
}

// Best returns the level nearest the inside of the market, or false if the
// side holds no resting orders.
func (s *BookSide) Best() (*PriceLevel, bool) {
	item := s.tree.Min()
	if item == nil {
		return nil, false
	}
	return item.(*bookItem).level, true
}

// Len is the number of distinct price levels resting on this side.
func (s *BookSide) Len() int { return s.tree.Len() }

// Ascend walks levels from best to worst, stopping early if fn returns
// false. Used for FOK's depth precheck and for depth rendering.
func (s *BookSide) Ascend(fn func(*PriceLevel) bool) {
	s.tree.Ascend(func(item btree.Item) bool {
		return fn(item.(*bookItem).level)
	})
}

// Quote is the observable top-of-book: best bid/ask price and aggregated
// quantity on each side, with explicit presence flags rather than sentinel
// prices so "absent" can never be mistaken for a real price in a comparison.
type Quote struct {
	HasBid bool
	BidPx  int64
	BidQty int
	HasAsk bool
	AskPx  int64
	AskQty int
}

// Equal reports whether two quotes carry the same observable values.
func (q Quote) Equal(o Quote) bool {
	return q == o
}

// indexEntry is the order index's non-owning handle into the FIFO slot that
// actually holds a resting order.
type indexEntry struct {
	side  Side
	price int64
	elem  *list.Element
}

// Book is the two-sided price ladder for one symbol: bids, asks, the order
// index enabling O(1) cancel/modify, and the cached top-of-book.
type Book struct {
	Bids *BookSide
	Asks *BookSide

	index map[int]*indexEntry

	top        Quote
	lastQuoted Quote

	nextOrderID int

	// OnTrade is invoked once per trade, in the order matches occur.
	OnTrade func(Trade)
	// OnQuote is invoked at most once per processed event, after all
	// structural mutations for that event, only when the observable
	// top-of-book differs from the last emitted snapshot.
	OnQuote func(timestamp string, q Quote)
}

// NewBook constructs an empty book for one symbol.
func NewBook() *Book {
	return &Book{
		Bids:       newBookSide(func(a, b int64) bool { return a > b }),
		Asks:       newBookSide(func(a, b int64) bool { return a < b }),
		index:      make(map[int]*indexEntry),
		lastQuoted: Quote{},
	}
}

// Top returns the cached top-of-book as of the last processed event.
func (b *Book) Top() Quote { return b.top }

// Order looks up a resting order by id, for callers that need to inspect
// (not mutate) it. Returns false if id is not currently resting.
func (b *Book) Order(id int) (*Order, bool) {
	e, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return e.elem.Value.(*Order), true
}

func (b *Book) sideOf(s Side) *BookSide {
	if s == Buy {
		return b.Bids
	}
	return b.Asks
}

func (b *Book) oppositeOf(s Side) *BookSide {
	if s == Buy {
		return b.Asks
	}
	return b.Bids
}

// rest inserts o at the tail of the FIFO at its own price on its own side
// and registers it in the order index.
func (b *Book) rest(o *Order) {
	side := b.sideOf(o.Side)
	lvl := side.getOrCreate(o.PriceTicks)
	elem := lvl.pushBack(o)
	b.index[o.ID] = &indexEntry{side: o.Side, price: o.PriceTicks, elem: elem}
}

// derest removes a resting order from its level and the index, erasing the
// level too if it becomes empty. Returns the order removed.
func (b *Book) derest(id int) (*Order, bool) {
	e, ok := b.index[id]
	if !ok {
		return nil, false
	}
	side := b.sideOf(e.side)
	lvl, ok := side.Get(e.price)
	if !ok {
		return nil, false
	}
	order := e.elem.Value.(*Order)
	lvl.remove(e.elem)
	delete(b.index, id)
	if lvl.Empty() {
		side.deleteLevel(e.price)
	}
	return order, true
}

// refreshTop recomputes the top-of-book cache from the current best levels
// of both sides.
func (b *Book) refreshTop() {
	var q Quote
	if lvl, ok := b.Bids.Best(); ok {
		q.HasBid = true
		q.BidPx = lvl.Price
		q.BidQty = lvl.TotalQty()
	}
	if lvl, ok := b.Asks.Best(); ok {
		q.HasAsk = true
		q.AskPx = lvl.Price
		q.AskQty = lvl.TotalQty()
	}
	b.top = q
}

// emitQuoteIfChanged notifies OnQuote when the observable top-of-book
// differs from the last emitted snapshot, then suppresses duplicates.
func (b *Book) emitQuoteIfChanged(timestamp string) {
	if b.top.Equal(b.lastQuoted) {
		return
	}
	b.lastQuoted = b.top
	if b.OnQuote != nil {
		b.OnQuote(timestamp, b.top)
	}
}
