package insights

import (
	"sort"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// PeriodComparison holds one entity's revenue in the current calendar month
// number and the two preceding month numbers, each computed independently,
// plus deltas of the current period against both.
type PeriodComparison struct {
	Name          string
	Current       float64
	Previous      float64
	TwoAgo        float64
	DeltaPrevious float64
	DeltaTwoAgo   float64
}

// MonthTriplet names the three calendar month numbers being compared.
type MonthTriplet struct {
	Current  int `json:"actual"`
	Previous int `json:"anterior"`
	TwoAgo   int `json:"hace_2"`
}

// monthBack shifts a 1-based month number backwards with December→January
// wrapping.
func monthBack(current time.Month, offset int) time.Month {
	m := int(current) - offset
	if m <= 0 {
		m += 12
	}
	return time.Month(m)
}

// ThreePeriodComparison ranks the top entities of the current month number
// and outer-joins their revenue in the two preceding month numbers, filling
// missing periods with zero. Entities are ranked by current-period revenue.
func ThreePeriodComparison(t sales.Table, asOf time.Time, kind EntityKind, limit int) ([]PeriodComparison, MonthTriplet) {
	if asOf.IsZero() {
		return []PeriodComparison{}, MonthTriplet{}
	}
	cur := asOf.Month()
	months := MonthTriplet{
		Current:  int(cur),
		Previous: int(monthBack(cur, 1)),
		TwoAgo:   int(monthBack(cur, 2)),
	}

	current := revenueByEntity(t.FilterMonth(cur), kind)
	previous := revenueByEntity(t.FilterMonth(monthBack(cur, 1)), kind)
	twoAgo := revenueByEntity(t.FilterMonth(monthBack(cur, 2)), kind)

	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if current[names[i]] != current[names[j]] {
			return current[names[i]] > current[names[j]]
		}
		return names[i] < names[j]
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	out := make([]PeriodComparison, 0, len(names))
	for _, name := range names {
		c, p, a := current[name], previous[name], twoAgo[name]
		out = append(out, PeriodComparison{
			Name:          name,
			Current:       round2(c),
			Previous:      round2(p),
			TwoAgo:        round2(a),
			DeltaPrevious: round2(c - p),
			DeltaTwoAgo:   round2(c - a),
		})
	}
	return out, months
}

func revenueByEntity(t sales.Table, kind EntityKind) map[string]float64 {
	out := map[string]float64{}
	for _, r := range t {
		if name := kind.key(r); name != "" {
			out[name] += r.NetAmount
		}
	}
	return out
}
