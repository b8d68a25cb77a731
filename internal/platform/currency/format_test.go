package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{name: "zero", amount: decimal.Zero, want: "$0"},
		{name: "small", amount: decimal.NewFromInt(750), want: "$750"},
		{name: "grouped", amount: decimal.NewFromInt(1250000), want: "$1,250,000"},
		{name: "rounds half up", amount: decimal.RequireFromString("999.5"), want: "$1,000"},
		{name: "rounds down", amount: decimal.RequireFromString("1000.49"), want: "$1,000"},
		{name: "negative", amount: decimal.NewFromInt(-2500), want: "-$2,500"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatUSD(tc.amount); got != tc.want {
				t.Fatalf("FormatUSD(%s)=%q want=%q", tc.amount, got, tc.want)
			}
		})
	}
}
