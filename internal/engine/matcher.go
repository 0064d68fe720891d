package engine

import "github.com/google/uuid"

// match runs incoming as the aggressor against the opposing side,
// consuming resting liquidity in price-time order until the aggressor is
// fully filled or the opposing side no longer crosses. Trades are emitted
// through OnTrade as they occur, in maker-consumption order: FIFO within a
// level, then across levels from best inward.
func (b *Book) match(incoming *Order) {
	if incoming.TIF == FOK {
		if !b.canFullyFill(incoming) {
			return
		}
	}

	opp := b.oppositeOf(incoming.Side)

	crosses := func(levelPx int64) bool {
		if incoming.Type == Market {
			return true
		}
		if incoming.Side == Buy {
			return levelPx <= incoming.PriceTicks
		}
		return levelPx >= incoming.PriceTicks
	}

	for incoming.Quantity > 0 {
		lvl, ok := opp.Best()
		if !ok || !crosses(lvl.Price) {
			break
		}

		for incoming.Quantity > 0 {
			elem := lvl.frontElement()
			if elem == nil {
				break
			}
			maker := elem.Value.(*Order)

			traded := incoming.Quantity
			if maker.Quantity < traded {
				traded = maker.Quantity
			}

			trade := b.newTrade(incoming, maker, lvl.Price, traded)
			if b.OnTrade != nil {
				b.OnTrade(trade)
			}

			incoming.Quantity -= traded
			maker.Quantity -= traded
			lvl.subtract(traded)

			if maker.Quantity == 0 {
				delete(b.index, maker.ID)
				lvl.remove(elem)
			}
		}

		if lvl.Empty() {
			opp.deleteLevel(lvl.Price)
		}
		b.refreshTop()
	}
}

func (b *Book) newTrade(incoming, maker *Order, priceTicks int64, qty int) Trade {
	t := Trade{
		id:         uuid.New().String(),
		Timestamp:  incoming.Timestamp,
		PriceTicks: priceTicks,
		Quantity:   qty,
	}
	if incoming.Side == Buy {
		t.BuyID, t.SellID = incoming.ID, maker.ID
	} else {
		t.BuyID, t.SellID = maker.ID, incoming.ID
	}
	return t
}

// canFullyFill is the FOK precheck: a read-only walk from the best opposing
// level inward, summing resting quantity at prices no worse than the
// aggressor's limit (ignored for MARKET) until the need is met or the
// limit is violated.
func (b *Book) canFullyFill(incoming *Order) bool {
	opp := b.oppositeOf(incoming.Side)
	hasLimit := incoming.Type == Limit
	need := incoming.Quantity

	opp.Ascend(func(lvl *PriceLevel) bool {
		if hasLimit {
			if incoming.Side == Buy && lvl.Price > incoming.PriceTicks {
				return false
			}
			if incoming.Side == Sell && lvl.Price < incoming.PriceTicks {
				return false
			}
		}
		need -= lvl.TotalQty()
		return need > 0
	})

	return need <= 0
}
