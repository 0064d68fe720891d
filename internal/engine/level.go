package engine

import "container/list"

// PriceLevel is the FIFO of resting orders at one price, with a cached sum
// of residual quantities. Orders are addressed by *list.Element handles
// that stay valid across pushes, pops and erasures of unrelated slots in
// the same FIFO — the intrusive-handle contract the order index relies on
// for O(1) cancel and modify-in-place.
type PriceLevel struct {
	Price    int64
	orders   *list.List
	totalQty int
}

func newPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{Price: price, orders: list.New()}
}

// TotalQty is the invariant cache: the sum of residual quantities of every
// order resting at this level.
func (l *PriceLevel) TotalQty() int { return l.totalQty }

// Empty reports whether the level's FIFO holds no orders.
func (l *PriceLevel) Empty() bool { return l.orders.Len() == 0 }

// pushBack rests o at the tail of the FIFO and returns the handle used for
// O(1) erase later.
func (l *PriceLevel) pushBack(o *Order) *list.Element {
	l.totalQty += o.Quantity
	return l.orders.PushBack(o)
}

// front returns the oldest resting order, or nil if the level is empty.
func (l *PriceLevel) front() *Order {
	e := l.orders.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Order)
}

// frontElement returns the handle of the oldest resting order.
func (l *PriceLevel) frontElement() *list.Element {
	return l.orders.Front()
}

// subtract shrinks the cached total by qty as a fill is applied to the
// front order. The matcher calls it for every fill; a maker left at zero is
// then taken out with remove, which subtracts its (now zero) residual.
func (l *PriceLevel) subtract(qty int) {
	l.totalQty -= qty
}

// remove erases the order at handle e from the FIFO, decrementing the
// cached total by its residual quantity.
func (l *PriceLevel) remove(e *list.Element) {
	o := e.Value.(*Order)
	l.totalQty -= o.Quantity
	l.orders.Remove(e)
}

// forEach walks the FIFO head to tail, stopping early if fn returns false.
func (l *PriceLevel) forEach(fn func(*Order) bool) {
	for e := l.orders.Front(); e != nil; e = e.Next() {
		if !fn(e.Value.(*Order)) {
			return
		}
	}
}
