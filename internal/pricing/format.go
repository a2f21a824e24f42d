package pricing

import (
	"math"
	"strconv"
	"strings"
)

// FormatIDR renders an amount as "Rp 1.234.567". This is the only place a
// price is rounded.
func FormatIDR(amount float64) string {
	rounded := int64(math.Round(amount))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
