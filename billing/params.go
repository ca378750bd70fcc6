package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// EncodeParams serialises the variant-specific fields of m.
func EncodeParams(m Method) ([]byte, error) {
	if m == nil {
		return nil, ErrNoMethod
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

type hourlyParams struct {
	RatePerHour *decimal.Decimal `json:"rate_per_hour"`
}

type fixedParams struct {
	Price *decimal.Decimal `json:"price"`
}

type packageParams struct {
	IncludedHours      *decimal.Decimal `json:"included_hours"`
	PackagePrice       *decimal.Decimal `json:"package_price"`
	OverageRatePerHour *decimal.Decimal `json:"overage_rate_per_hour"`
}

// DecodeParams rebuilds the Method of the given kind from raw. Fields that
// belong to another variant and missing fields are both rejected.
func DecodeParams(kind Kind, raw []byte) (Method, error) {
	var m Method
	switch kind {
	case KindHourly:
		var p hourlyParams
		if err := strictUnmarshal(raw, &p); err != nil {
			return nil, err
		}
		if p.RatePerHour == nil {
			return nil, missing(kind, "rate_per_hour")
		}
		m = Hourly{RatePerHour: *p.RatePerHour}
	case KindFixed:
		var p fixedParams
		if err := strictUnmarshal(raw, &p); err != nil {
			return nil, err
		}
		if p.Price == nil {
			return nil, missing(kind, "price")
		}
		m = Fixed{Price: *p.Price}
	case KindPackage:
		var p packageParams
		if err := strictUnmarshal(raw, &p); err != nil {
			return nil, err
		}
		switch {
		case p.IncludedHours == nil:
			return nil, missing(kind, "included_hours")
		case p.PackagePrice == nil:
			return nil, missing(kind, "package_price")
		case p.OverageRatePerHour == nil:
			return nil, missing(kind, "overage_rate_per_hour")
		}
		m = Package{
			IncludedHours:      *p.IncludedHours,
			PackagePrice:       *p.PackagePrice,
			OverageRatePerHour: *p.OverageRatePerHour,
		}
	default:
		return nil, fmt.Errorf("unknown billing method kind %q", kind)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func strictUnmarshal(raw []byte, v interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return errors.New("billing params are empty")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid billing params: %w", err)
	}
	return nil
}

func missing(kind Kind, field string) error {
	return fmt.Errorf("%s billing method requires %s", kind, field)
}
