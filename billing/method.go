// Package billing holds the pricing policies applied to a table session's
// duration and the arithmetic that turns elapsed time into a time charge.
// Nothing in this package performs I/O.
package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind names a billing method variant as it is stored and exchanged.
type Kind string

const (
	KindHourly  Kind = "hourly"
	KindFixed   Kind = "fixed"
	KindPackage Kind = "package"
)

// ParseKind accepts the stored names plus "session", the label the front
// desk uses for a fixed per-visit price.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindHourly, KindFixed, KindPackage:
		return Kind(s), nil
	case "session":
		return KindFixed, nil
	}
	return "", fmt.Errorf("unknown billing method kind %q", s)
}

var (
	ErrNoMethod        = errors.New("billing method is required")
	ErrNegativeElapsed = errors.New("elapsed time cannot be negative")
	ErrNegativeAmount  = errors.New("billing amounts cannot be negative")
	ErrNoIncludedHours = errors.New("package must include a positive number of hours")
	ErrAmountPrecision = errors.New("amounts cannot have more than 2 decimal places")
)

// ValidateAmount accepts non-negative amounts with at most two decimal
// places, the precision money columns are stored with.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// Method is a pricing policy. Only Hourly, Fixed and Package implement it,
// so every value carries exactly the fields of its own variant.
type Method interface {
	Kind() Kind
	Validate() error
	timeCharge(hours decimal.Decimal) decimal.Decimal
}

// Hourly bills every started hour at RatePerHour.
type Hourly struct {
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
}

func (Hourly) Kind() Kind { return KindHourly }

func (m Hourly) Validate() error {
	return ValidateAmount(m.RatePerHour)
}

func (m Hourly) timeCharge(hours decimal.Decimal) decimal.Decimal {
	return hours.Ceil().Mul(m.RatePerHour)
}

// Fixed bills Price once per session regardless of duration.
type Fixed struct {
	Price decimal.Decimal `json:"price"`
}

func (Fixed) Kind() Kind { return KindFixed }

func (m Fixed) Validate() error {
	return ValidateAmount(m.Price)
}

func (m Fixed) timeCharge(decimal.Decimal) decimal.Decimal {
	return m.Price
}

// Package bills PackagePrice for up to IncludedHours, then every started
// hour beyond that at OverageRatePerHour.
type Package struct {
	IncludedHours      decimal.Decimal `json:"included_hours"`
	PackagePrice       decimal.Decimal `json:"package_price"`
	OverageRatePerHour decimal.Decimal `json:"overage_rate_per_hour"`
}

func (Package) Kind() Kind { return KindPackage }

func (m Package) Validate() error {
	if !m.IncludedHours.IsPositive() {
		return ErrNoIncludedHours
	}
	if err := ValidateAmount(m.PackagePrice); err != nil {
		return err
	}
	return ValidateAmount(m.OverageRatePerHour)
}

func (m Package) timeCharge(hours decimal.Decimal) decimal.Decimal {
	if hours.LessThanOrEqual(m.IncludedHours) {
		return m.PackagePrice
	}
	overage := hours.Sub(m.IncludedHours).Ceil()
	return m.PackagePrice.Add(overage.Mul(m.OverageRatePerHour))
}
