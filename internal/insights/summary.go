package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// ExecutiveSummary renders the narrative digest: monthly target status plus
// inactive-customer and stale-product alerts, joined into one paragraph.
func ExecutiveSummary(t sales.Table, asOf time.Time) string {
	meta := MonthlyComparison(t, asOf)
	inactive := InactiveCustomers(t, asOf, DefaultCustomerInactiveDays)
	stale := StaleProducts(t, asOf, DefaultProductInactiveDays)

	parts := make([]string, 0, 3)
	switch {
	case meta.TargetPercent < 80:
		parts = append(parts, fmt.Sprintf(
			"ALERTA: Las ventas de %s están al %v%% de la meta. Ventas actuales: $%s, Meta: $%s.",
			meta.MonthName, meta.TargetPercent,
			formatMoney(meta.CurrentSales), formatMoney(meta.SuggestedTarget)))
	case meta.TargetPercent >= 100:
		parts = append(parts, fmt.Sprintf(
			"EXCELENTE: Las ventas de %s superan la meta (%v%%). Ventas: $%s.",
			meta.MonthName, meta.TargetPercent, formatMoney(meta.CurrentSales)))
	default:
		parts = append(parts, fmt.Sprintf(
			"Las ventas de %s están al %v%% de la meta. Faltan $%s para alcanzarla.",
			meta.MonthName, meta.TargetPercent,
			formatMoney(meta.SuggestedTarget-meta.CurrentSales)))
	}

	if inactive.TotalInactive > 0 {
		parts = append(parts, fmt.Sprintf(
			"Hay %d clientes sin comprar en más de %d días, representando $%s en ventas históricas.",
			inactive.TotalInactive, inactive.ThresholdDays, formatMoney(inactive.ValueAtRisk)))
	}
	if stale.AffectedProducts > 0 {
		parts = append(parts, fmt.Sprintf(
			"%d productos populares no se han vendido en más de %d días. Revisar inventario y promociones.",
			stale.AffectedProducts, stale.ThresholdDays))
	}
	return strings.Join(parts, " ")
}
