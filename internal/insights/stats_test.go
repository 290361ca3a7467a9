package insights

import (
	"testing"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(customer, product, invoice, day string, qty, amount float64) sales.Record {
	r := sales.Record{
		Customer:  customer,
		Product:   product,
		InvoiceID: invoice,
		Quantity:  qty,
		NetAmount: amount,
	}
	if day != "" {
		r.Date = date(day)
		r.HasDate = true
	}
	return r
}

// repeat expands one template row into n rows with distinct invoice ids.
func repeat(r sales.Record, n int) sales.Table {
	out := make(sales.Table, 0, n)
	for i := 0; i < n; i++ {
		c := r
		c.InvoiceID = c.InvoiceID + string(rune('a'+i))
		out = append(out, c)
	}
	return out
}

func TestGroupStatsAggregates(t *testing.T) {
	asOf := date("2024-06-30")
	table := sales.Table{
		row("ACME", "TELA AUTO", "F1", "2024-06-01", 2, 100),
		row("ACME", "CHENILLE PREMIUM", "F2", "2024-06-20", 1, 50),
		row("ACME", "TELA AUTO", "F3", "", 1, 25),
		row("BETA", "TELA AUTO", "F4", "2024-01-15", 5, 500),
	}

	stats := GroupStats(table, asOf, ByCustomer)
	if len(stats) != 2 {
		t.Fatalf("customers = %d, want 2", len(stats))
	}
	acme := stats[0]
	if acme.Name != "ACME" {
		t.Fatalf("first stat = %q, want ACME (sorted by name)", acme.Name)
	}
	if acme.Revenue != 175 {
		t.Errorf("revenue = %v, want 175 (undated rows still count revenue)", acme.Revenue)
	}
	if acme.Transactions != 2 {
		t.Errorf("transactions = %d, want 2 (undated rows excluded)", acme.Transactions)
	}
	if acme.DaysInactive != 10 {
		t.Errorf("days inactive = %d, want 10", acme.DaysInactive)
	}

	products := GroupStats(table, asOf, ByProduct)
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}
}

func TestRelevantOrSemantics(t *testing.T) {
	stats := []EntityStats{
		{Name: "many-tx", Transactions: 10, Revenue: 100},
		{Name: "big-spend", Transactions: 1, Revenue: 8000},
		{Name: "neither", Transactions: 2, Revenue: 100},
		{Name: "boundary", Transactions: 5, Revenue: 5000},
	}
	got := Relevant(stats, 5, 5000)
	if len(got) != 2 {
		t.Fatalf("relevant = %d, want 2", len(got))
	}
	if got[0].Name != "many-tx" || got[1].Name != "big-spend" {
		t.Errorf("relevant = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestWatchlistBoundary(t *testing.T) {
	asOf := date("2024-06-30")
	table := sales.Table{}
	// 10 tx, $8000, last purchase 95 days before the as-of date.
	table = append(table, repeat(row("LAPSED", "TELA AUTO", "A", "2024-03-27", 1, 800), 10)...)
	// Same profile but only 89 days inactive.
	table = append(table, repeat(row("FRESH", "TELA AUTO", "B", "2024-04-02", 1, 800), 10)...)

	stats := Relevant(GroupStats(table, asOf, ByCustomer), 5, 5000)
	watch := Watchlist(stats, 90, 40)
	if len(watch) != 1 {
		t.Fatalf("watchlist = %d entries, want 1", len(watch))
	}
	if watch[0].Name != "LAPSED" {
		t.Errorf("watchlist[0] = %q, want LAPSED", watch[0].Name)
	}
	if watch[0].DaysInactive != 95 {
		t.Errorf("days inactive = %d, want 95", watch[0].DaysInactive)
	}
}

func TestWatchlistOrderAndClip(t *testing.T) {
	stats := []EntityStats{
		{Name: "c", HasActivity: true, DaysInactive: 200},
		{Name: "a", HasActivity: true, DaysInactive: 90},
		{Name: "b", HasActivity: true, DaysInactive: 90},
		{Name: "nodate", HasActivity: false},
	}
	got := Watchlist(stats, 90, 2)
	if len(got) != 2 {
		t.Fatalf("watchlist = %d, want 2 after clip", len(got))
	}
	if got[0].Name != "a" || got[1].Name != "b" {
		t.Errorf("order = %q, %q; want a, b (days asc, name tiebreak)", got[0].Name, got[1].Name)
	}
}

func TestAtRiskValueCoversAllInactive(t *testing.T) {
	stats := []EntityStats{
		{Name: "x", HasActivity: true, DaysInactive: 120, Revenue: 1000},
		{Name: "y", HasActivity: true, DaysInactive: 100, Revenue: 3000},
		{Name: "z", HasActivity: true, DaysInactive: 90, Revenue: 9999},
	}
	got, value := AtRisk(stats, 90, 1)
	if len(got) != 1 {
		t.Fatalf("list = %d, want 1 after clip", len(got))
	}
	if got[0].Name != "y" {
		t.Errorf("top at-risk = %q, want y (revenue desc)", got[0].Name)
	}
	// z sits exactly on the threshold and is excluded (strictly greater).
	if value != 4000 {
		t.Errorf("value at risk = %v, want 4000 over all inactive, not the clipped list", value)
	}
}

func TestRecentActive(t *testing.T) {
	stats := []EntityStats{
		{Name: "old", HasActivity: true, DaysInactive: 8, Revenue: 9000},
		{Name: "small", HasActivity: true, DaysInactive: 2, Revenue: 100},
		{Name: "big", HasActivity: true, DaysInactive: 7, Revenue: 5000},
	}
	got := RecentActive(stats, 7, 15)
	if len(got) != 2 {
		t.Fatalf("recent = %d, want 2", len(got))
	}
	if got[0].Name != "big" {
		t.Errorf("recent[0] = %q, want big", got[0].Name)
	}
}

func TestTopByRevenueDoesNotMutate(t *testing.T) {
	stats := []EntityStats{
		{Name: "low", Revenue: 1},
		{Name: "high", Revenue: 2},
	}
	got := TopByRevenue(stats, 1)
	if got[0].Name != "high" {
		t.Errorf("top = %q, want high", got[0].Name)
	}
	if stats[0].Name != "low" {
		t.Errorf("input reordered; TopByRevenue must copy before sorting")
	}
}
