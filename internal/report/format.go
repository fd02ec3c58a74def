package report

import (
	"fmt"
	"strings"
)

// FormatMoney formats an integer money amount with comma separators.
func FormatMoney(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var b strings.Builder
		start := len(s) % 3
		if start > 0 {
			b.WriteString(s[:start])
		}
		for i := start; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatPercent formats a percentage value with a sign and two decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

// FormatDrawdown formats a max-drawdown percentage. Drawdowns are reported as
// positive magnitudes.
func FormatDrawdown(d float64) string {
	return fmt.Sprintf("%.2f%%", d)
}
