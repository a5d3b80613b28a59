package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah форматирует сумму как "Rp18.000" (разделитель тысяч - точка, без копеек)
func FormatRupiah(amount decimal.Decimal) string {
	digits := amount.Abs().StringFixed(0)

	var b strings.Builder
	if amount.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("Rp")
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
