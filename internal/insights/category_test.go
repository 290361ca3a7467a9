package insights

import (
	"testing"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

func TestBaseCategory(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"TELA AUTO-1000", "TELA AUTO"},
		{"TELA AUTO - 500", "TELA AUTO"},
		{"TELA AUTO 200", "TELA AUTO"},
		{"CHENILLE", "CHENILLE"},
		{"", "OTROS"},
		{"   ", "OTROS"},
		{"1000", "1000"},
	}
	for _, c := range cases {
		if got := BaseCategory(c.in); got != c.want {
			t.Errorf("BaseCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCategorySummary(t *testing.T) {
	table := sales.Table{
		row("ACME", "TELA AUTO", "F1", "2024-06-01", 2, 100),
		row("BETA", "TELA AUTO", "F2", "2024-06-02", 1, 50),
		row("ACME", "CHENILLE PREMIUM", "F1", "2024-06-01", 1, 300),
	}
	table[0].Category = "TELAS-100"
	table[1].Category = "TELAS-200"
	table[2].Category = "DECORACION"

	got := CategorySummary(table)
	if len(got) != 3 {
		t.Fatalf("categories = %d, want 3", len(got))
	}
	if got[0].Category != "DECORACION" || got[0].Revenue != 300 {
		t.Errorf("top category = %+v, want DECORACION at 300", got[0])
	}

	grouped := GroupedCategorySummary(table)
	if len(grouped) != 2 {
		t.Fatalf("grouped = %d, want 2 (TELAS variants collapse)", len(grouped))
	}
	var telas CategoryStats
	for _, g := range grouped {
		if g.Category == "TELAS" {
			telas = g
		}
	}
	if telas.Revenue != 150 || telas.Customers != 2 {
		t.Errorf("TELAS = %+v, want revenue 150 from 2 customers", telas)
	}
}

func TestCategorySummaryUnknownBucket(t *testing.T) {
	table := sales.Table{row("ACME", "TELA AUTO", "F1", "2024-06-01", 1, 10)}
	got := CategorySummary(table)
	if len(got) != 1 || got[0].Category != UnknownCategory {
		t.Errorf("got %+v, want single %s bucket", got, UnknownCategory)
	}
}

func TestKPIs(t *testing.T) {
	table := sales.Table{
		row("ACME", "TELA AUTO", "F1", "2024-06-01", 2, 100),
		row("ACME", "CHENILLE PREMIUM", "F1", "2024-06-01", 1, 50),
		row("BETA", "TELA AUTO", "F2", "2024-06-02", 3, 150),
	}
	got := KPIs(table)
	if got.TotalRevenue != 300 {
		t.Errorf("revenue = %v, want 300", got.TotalRevenue)
	}
	if got.TotalOrders != 2 {
		t.Errorf("orders = %d, want 2 distinct invoices", got.TotalOrders)
	}
	if got.TotalItems != 6 {
		t.Errorf("items = %v, want 6", got.TotalItems)
	}
	if got.AvgOrderValue != 150 {
		t.Errorf("avg order = %v, want 150", got.AvgOrderValue)
	}
}

func TestKPIsEmpty(t *testing.T) {
	got := KPIs(sales.Table{})
	if got.AvgOrderValue != 0 || got.TotalOrders != 0 {
		t.Errorf("empty KPIs = %+v, want zeros", got)
	}
}
