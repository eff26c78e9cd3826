package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rupiah renders an amount the way the storefront displays prices:
// "Rp200.000" with dot thousand separators. Fractional rupiah are truncated,
// matching the floor semantics of the discount math.
func Rupiah(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	digits := amount.Abs().Floor().BigInt().String()

	var b strings.Builder
	b.WriteString("Rp")
	if negative {
		b.WriteString("-")
	}
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
		if len(digits) > head {
			b.WriteString(".")
		}
	}
	for i := head; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(".")
		}
	}
	return b.String()
}

// Date renders an instant for order history and voucher validity displays.
func Date(t time.Time) string {
	return t.Format("02 Jan 2006")
}

func DateTime(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}
