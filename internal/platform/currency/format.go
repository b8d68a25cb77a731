package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders amount as whole US dollars with thousands separators,
// e.g. 1250000.4 -> "$1,250,000". Halves round away from zero.
func FormatUSD(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + usdPrinter.Sprintf("%d", rounded.IntPart())
}
