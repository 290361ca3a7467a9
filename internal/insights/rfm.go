package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// RFMScore carries one customer's recency/frequency/monetary measures, the
// three quintile scores, their composition, and the assigned segment.
type RFMScore struct {
	Customer    string  `json:"cliente"`
	RecencyDays int     `json:"recencia_dias"`
	Frequency   int     `json:"frecuencia"`
	Monetary    float64 `json:"monetario"`
	R           int     `json:"r"`
	F           int     `json:"f"`
	M           int     `json:"m"`
	Code        string  `json:"codigo_rfm"`
	Sum         int     `json:"suma_rfm"`
	Segment     string  `json:"segmento"`
}

// RFMScores computes per-customer RFM quintile scores against the as-of date.
// Recency is days since last purchase (lower is better, so its quintile is
// inverted), frequency is distinct invoice count, monetary is total revenue.
// Customers without a single valid purchase date are skipped: they have no
// recency. Output is sorted by descending score sum, then name.
func RFMScores(t sales.Table, asOf time.Time) []RFMScore {
	if asOf.IsZero() {
		return []RFMScore{}
	}
	type agg struct {
		last     time.Time
		hasDate  bool
		invoices map[string]struct{}
		revenue  float64
	}
	byCustomer := map[string]*agg{}
	for _, r := range t {
		if r.Customer == "" {
			continue
		}
		a, ok := byCustomer[r.Customer]
		if !ok {
			a = &agg{invoices: map[string]struct{}{}}
			byCustomer[r.Customer] = a
		}
		a.revenue += r.NetAmount
		if r.InvoiceID != "" {
			a.invoices[r.InvoiceID] = struct{}{}
		}
		if r.HasDate && (!a.hasDate || r.Date.After(a.last)) {
			a.last = r.Date
			a.hasDate = true
		}
	}

	scores := make([]RFMScore, 0, len(byCustomer))
	for name, a := range byCustomer {
		if !a.hasDate {
			continue
		}
		scores = append(scores, RFMScore{
			Customer:    name,
			RecencyDays: int(asOf.Sub(a.last).Hours() / 24),
			Frequency:   len(a.invoices),
			Monetary:    round2(a.revenue),
		})
	}
	if len(scores) == 0 {
		return scores
	}
	// Deterministic base order before ranking; ties in a dimension are then
	// broken by this appearance order, mirroring rank-then-bucket scoring.
	sort.Slice(scores, func(i, j int) bool { return scores[i].Customer < scores[j].Customer })

	n := len(scores)
	rRanks := ranks(n, func(i, j int) bool { return scores[i].RecencyDays < scores[j].RecencyDays })
	fRanks := ranks(n, func(i, j int) bool { return scores[i].Frequency < scores[j].Frequency })
	mRanks := ranks(n, func(i, j int) bool { return scores[i].Monetary < scores[j].Monetary })

	for i := range scores {
		scores[i].R = 6 - quintile(rRanks[i], n) // most recent quintile scores 5
		scores[i].F = quintile(fRanks[i], n)
		scores[i].M = quintile(mRanks[i], n)
		scores[i].Code = fmt.Sprintf("%d%d%d", scores[i].R, scores[i].F, scores[i].M)
		scores[i].Sum = scores[i].R + scores[i].F + scores[i].M
		scores[i].Segment = segmentFor(scores[i].R, scores[i].F, scores[i].M)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Sum != scores[j].Sum {
			return scores[i].Sum > scores[j].Sum
		}
		return scores[i].Customer < scores[j].Customer
	})
	return scores
}

// ranks assigns 1-based ranks under less, breaking ties by position so no two
// customers share a rank (and therefore no quantile edge can duplicate).
func ranks(n int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	out := make([]int, n)
	for pos, i := range idx {
		out[i] = pos + 1
	}
	return out
}

// quintile buckets a 1..n rank into five equal-frequency bins, 1 (lowest) to
// 5 (highest). The top rank always lands in bin 5, even for tiny populations.
func quintile(rank, n int) int {
	if n <= 1 {
		return 3
	}
	if rank <= 1 {
		return 1
	}
	return int(math.Ceil(5 * float64(rank-1) / float64(n-1)))
}

// Segment names, evaluated in priority order; the first matching rule wins.
const (
	SegmentVIP       = "VIP"
	SegmentLoyal     = "Loyal"
	SegmentPotential = "Potential"
	SegmentNew       = "New"
	SegmentAtRisk    = "At-Risk"
	SegmentLost      = "Lost"
	SegmentDormant   = "Dormant"
	SegmentRegular   = "Regular"
)

func segmentFor(r, f, m int) string {
	switch {
	case r >= 4 && f >= 4 && m >= 4:
		return SegmentVIP
	case f >= 4 && m >= 3:
		return SegmentLoyal
	case r >= 4 && m >= 4:
		return SegmentPotential
	case r >= 4 && f <= 2:
		return SegmentNew
	case r <= 2 && m >= 4:
		return SegmentAtRisk
	case r == 1 && f <= 2:
		return SegmentLost
	case r <= 2:
		return SegmentDormant
	default:
		return SegmentRegular
	}
}
