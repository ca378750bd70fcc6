package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hour = decimal.NewFromInt(int64(time.Hour))

// Calculate returns the time charge for a session billed with m that lasted
// elapsedHours. Partial hours always round up.
func Calculate(m Method, elapsedHours decimal.Decimal) (decimal.Decimal, error) {
	if m == nil {
		return decimal.Zero, ErrNoMethod
	}
	if elapsedHours.IsNegative() {
		return decimal.Zero, ErrNegativeElapsed
	}
	if err := m.Validate(); err != nil {
		return decimal.Zero, err
	}
	return m.timeCharge(elapsedHours), nil
}

// ElapsedHours converts the interval between start and end into hours.
// An end before start (clock skew between hosts) counts as zero.
func ElapsedHours(start, end time.Time) decimal.Decimal {
	d := end.Sub(start)
	if d <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(d)).Div(hour)
}
