package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeParams(t *testing.T) {
	methods := []Method{
		Hourly{RatePerHour: d("30")},
		Fixed{Price: d("40")},
		Package{IncludedHours: d("4"), PackagePrice: d("80"), OverageRatePerHour: d("20")},
	}
	for _, m := range methods {
		raw, err := EncodeParams(m)
		require.NoError(t, err)

		got, err := DecodeParams(m.Kind(), raw)
		require.NoError(t, err)
		assert.Equal(t, m.Kind(), got.Kind())

		charge, err := Calculate(got, d("5"))
		require.NoError(t, err)
		want, _ := Calculate(m, d("5"))
		assert.True(t, want.Equal(charge))
	}
}

func TestDecodeParamsRejectsMixedVariants(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		raw  string
	}{
		{"hourly with package hours", KindHourly, `{"rate_per_hour":"30","included_hours":"4"}`},
		{"fixed without price", KindFixed, `{}`},
		{"package missing overage", KindPackage, `{"included_hours":"4","package_price":"80"}`},
		{"package with zero hours", KindPackage, `{"included_hours":"0","package_price":"80","overage_rate_per_hour":"20"}`},
		{"negative rate", KindHourly, `{"rate_per_hour":"-1"}`},
		{"empty params", KindFixed, ``},
		{"unknown kind", Kind("weekly"), `{"price":"1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeParams(tt.kind, []byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
