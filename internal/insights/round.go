package insights

import (
	"strings"

	"github.com/shopspring/decimal"
)

// round2 rounds a monetary figure to cents for serialization. Aggregation
// itself stays in float64; rounding happens once, at the report boundary.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// formatMoney renders a whole-peso amount with thousands separators, for the
// executive summary text.
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
