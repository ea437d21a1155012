package view

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatNumber groups thousands and keeps up to frac fraction digits,
// dropping trailing zeros: 462889.23 -> "462,889.23", 520800 -> "520,800".
func FormatNumber(d decimal.Decimal, frac int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", number.Decimal(d.Round(int32(frac)).InexactFloat64(), number.MaxFractionDigits(frac)))
}

func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + FormatNumber(d, 2)
}

// FormatPercent renders a one-decimal percentage, "98.7%".
func FormatPercent(d decimal.Decimal) string { return d.StringFixed(1) + "%" }

// FormatSharePercent keeps two decimals, "10.12%".
func FormatSharePercent(d decimal.Decimal) string { return d.StringFixed(2) + "%" }

// FormatSignedPercent always carries the sign, "+12.5%" / "-7.4%".
func FormatSignedPercent(d decimal.Decimal) string {
	if d.Sign() >= 0 {
		return "+" + d.StringFixed(1) + "%"
	}
	return d.StringFixed(1) + "%"
}

func FormatROAS(d decimal.Decimal) string { return d.StringFixed(2) + "x" }
