package pricing

import (
	"fmt"
	"strings"
)

// Amount is a USD amount in nanodollars (1e-9 USD). Per-token rates land on
// whole nanodollars, so summing token counts against them stays exact where
// float64 starts drifting at sub-cent totals.
type Amount int64

const nanosPerDollar = 1_000_000_000

// String renders the amount as dollars with four decimal places, the
// resolution task costs are usually discussed at ($0.0001 and up).
func (a Amount) String() string {
	tenths := (int64(a) + 50_000) / 100_000 // round half up to 1e-4 dollars
	return fmt.Sprintf("$%d.%04d", tenths/10_000, tenths%10_000)
}

// Decimal renders the full-precision decimal value without a currency sign,
// trailing zeros trimmed.
func (a Amount) Decimal() string {
	n := int64(a)
	whole, frac := n/nanosPerDollar, n%nanosPerDollar
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	s := strings.TrimRight(fmt.Sprintf("%d.%09d", whole, frac), "0")
	return s
}

// MarshalJSON emits the amount as a plain decimal number so consumers see
// dollars, not nanodollars.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal()), nil
}
