// Package wire implements the two textual input grammars the engine
// accepts and the decimal/tick price conversion used only at the
// ingress/egress boundary — the engine core never touches floating point.
package wire

import "math"

// Ticks is a price converter bound to one tick scale (ticks per unit of
// quote currency, e.g. 100 for cents).
type Ticks struct {
	Scale int64
}

// ToTicks rounds a decimal quote-currency price to the nearest integer
// tick.
func (t Ticks) ToTicks(price float64) int64 {
	return int64(math.Round(price * float64(t.Scale)))
}

// ToDecimal converts an integer tick price back to a decimal
// quote-currency value for display or CSV output.
func (t Ticks) ToDecimal(priceTicks int64) float64 {
	return float64(priceTicks) / float64(t.Scale)
}
