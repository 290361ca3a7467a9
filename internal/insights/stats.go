package insights

import (
	"sort"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// EntityStats aggregates one customer or product: total revenue, units,
// transaction count and last activity relative to the as-of date.
// Transactions and last activity only count rows with a valid date, matching
// the invariant that date-derived fields are null for unparseable dates.
type EntityStats struct {
	Name         string
	Revenue      float64
	Quantity     float64
	Transactions int
	LastActivity time.Time
	HasActivity  bool
	DaysInactive int
}

// EntityKind selects the grouping key for entity-level reports.
type EntityKind int

const (
	ByCustomer EntityKind = iota
	ByProduct
)

func (k EntityKind) key(r sales.Record) string {
	if k == ByCustomer {
		return r.Customer
	}
	return r.Product
}

// GroupStats aggregates the table per entity. Results are sorted by name so
// downstream ordering decisions start from a deterministic base.
func GroupStats(t sales.Table, asOf time.Time, kind EntityKind) []EntityStats {
	byName := map[string]*EntityStats{}
	order := make([]string, 0)
	for _, r := range t {
		name := kind.key(r)
		if name == "" {
			continue
		}
		s, ok := byName[name]
		if !ok {
			s = &EntityStats{Name: name}
			byName[name] = s
			order = append(order, name)
		}
		s.Revenue += r.NetAmount
		s.Quantity += r.Quantity
		if r.HasDate {
			s.Transactions++
			if !s.HasActivity || r.Date.After(s.LastActivity) {
				s.LastActivity = r.Date
				s.HasActivity = true
			}
		}
	}
	sort.Strings(order)
	out := make([]EntityStats, 0, len(order))
	for _, name := range order {
		s := byName[name]
		if s.HasActivity {
			s.DaysInactive = int(asOf.Sub(s.LastActivity).Hours() / 24)
		}
		out = append(out, *s)
	}
	return out
}

// Relevant keeps entities with enough history to matter: more than minTx
// transactions OR more than minRevenue in total sales. The OR is deliberate;
// a high-spend infrequent buyer still counts.
func Relevant(stats []EntityStats, minTx int, minRevenue float64) []EntityStats {
	out := make([]EntityStats, 0, len(stats))
	for _, s := range stats {
		if s.Transactions > minTx || s.Revenue > minRevenue {
			out = append(out, s)
		}
	}
	return out
}

// Watchlist lists entities inactive for at least minDays, soonest-lapsed
// first (ascending days), capped at limit. Entities with no valid activity
// date are excluded: their inactivity is unknown, not infinite.
func Watchlist(stats []EntityStats, minDays, limit int) []EntityStats {
	out := make([]EntityStats, 0)
	for _, s := range stats {
		if s.HasActivity && s.DaysInactive >= minDays {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysInactive != out[j].DaysInactive {
			return out[i].DaysInactive < out[j].DaysInactive
		}
		return out[i].Name < out[j].Name
	})
	return clip(out, limit)
}

// AtRisk lists entities inactive strictly more than minDays, ordered by
// revenue descending (the prioritized risk list), along with the total
// revenue represented by every inactive entity, not just the returned slice.
func AtRisk(stats []EntityStats, minDays, limit int) ([]EntityStats, float64) {
	out := make([]EntityStats, 0)
	valueAtRisk := 0.0
	for _, s := range stats {
		if s.HasActivity && s.DaysInactive > minDays {
			out = append(out, s)
			valueAtRisk += s.Revenue
		}
	}
	sortByRevenueDesc(out)
	return clip(out, limit), valueAtRisk
}

// RecentActive lists entities active within maxDays, top revenue first.
func RecentActive(stats []EntityStats, maxDays, limit int) []EntityStats {
	out := make([]EntityStats, 0)
	for _, s := range stats {
		if s.HasActivity && s.DaysInactive <= maxDays {
			out = append(out, s)
		}
	}
	sortByRevenueDesc(out)
	return clip(out, limit)
}

// TopByRevenue returns the all-time top entities regardless of recency.
func TopByRevenue(stats []EntityStats, limit int) []EntityStats {
	out := make([]EntityStats, len(stats))
	copy(out, stats)
	sortByRevenueDesc(out)
	return clip(out, limit)
}

func sortByRevenueDesc(stats []EntityStats) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Revenue != stats[j].Revenue {
			return stats[i].Revenue > stats[j].Revenue
		}
		return stats[i].Name < stats[j].Name
	})
}

func clip(stats []EntityStats, limit int) []EntityStats {
	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}
