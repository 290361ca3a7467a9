package insights

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

func bundleTable() sales.Table {
	table := sales.Table{}
	table = append(table, repeat(row("GONE", "TELA AUTO", "G", "2024-03-02", 1, 1500), 6)...)
	table = append(table, repeat(row("ALIVE", "CHENILLE PREMIUM", "A", "2024-06-28", 1, 2000), 6)...)
	table = append(table, row("WHALE", "PVC BONDE", "W1", "2024-05-12", 1, 30000))
	table = append(table, row("GONE", "TELA AUTO", "G9", "", 1, 500))
	return table
}

func TestBuildBundle(t *testing.T) {
	now := time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC)
	got := BuildBundle(bundleTable(), now, DefaultThresholds())

	if got.ReportID == "" {
		t.Errorf("report id missing")
	}
	if got.GeneratedAt != now.Format(time.RFC3339) {
		t.Errorf("generated at = %q", got.GeneratedAt)
	}
	if got.Period.From != "2024-03-02" || got.Period.To != "2024-06-28" {
		t.Errorf("period = %+v, want 2024-03-02..2024-06-28", got.Period)
	}

	// GONE: 6 tx, 118 days inactive against the latest sale date.
	if got.InactiveCustomers.Total != 1 {
		t.Fatalf("inactive customers = %d, want 1", got.InactiveCustomers.Total)
	}
	gone := got.InactiveCustomers.List[0]
	if gone.Customer != "GONE" || gone.DaysSince != 118 {
		t.Errorf("inactive[0] = %+v, want GONE at 118 days", gone)
	}
	if gone.Revenue != 9500 {
		t.Errorf("inactive revenue = %v, want 9500 including the undated row", gone.Revenue)
	}

	// ALIVE bought 0 days before the reference date.
	if len(got.RecentCustomers.List) != 1 || got.RecentCustomers.List[0].Customer != "ALIVE" {
		t.Errorf("recent customers = %+v, want ALIVE", got.RecentCustomers.List)
	}
	// Recent rows omit the last purchase date.
	if got.RecentCustomers.List[0].LastPurchase != "" {
		t.Errorf("recent row carries a date: %+v", got.RecentCustomers.List[0])
	}

	if len(got.TopCustomers.List) != 3 || got.TopCustomers.List[0].Customer != "WHALE" {
		t.Errorf("top customers = %+v, want WHALE first", got.TopCustomers.List)
	}
	if got.CustomerComparison.Months.Current != 6 {
		t.Errorf("comparison months = %+v, want current 6", got.CustomerComparison.Months)
	}
	if got.ExecutiveSummary == "" {
		t.Errorf("executive summary missing")
	}
}

func TestBundleWireTags(t *testing.T) {
	now := time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(BuildBundle(bundleTable(), now, DefaultThresholds()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"fecha_generacion", "reporte_id", "periodo_datos", "meta_ventas_mes",
		"clientes_inactivos_40", "productos_sin_movimiento_40",
		"clientes_recientes", "productos_recientes",
		"top_clientes_historico", "top_productos_historico",
		"comparacion_mensual_clientes", "comparacion_mensual_productos",
		"resumen_ejecutivo",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("payload missing %q", key)
		}
	}
}

func TestBuildBundleEmpty(t *testing.T) {
	got := BuildBundle(sales.Table{}, time.Now(), DefaultThresholds())
	if got.Period.From != "" || got.Period.To != "" {
		t.Errorf("period = %+v, want empty", got.Period)
	}
	if len(got.InactiveCustomers.List) != 0 || len(got.TopProducts.List) != 0 {
		t.Errorf("empty dataset should produce empty lists")
	}
}
