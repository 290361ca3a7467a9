package insights

import (
	"time"

	"github.com/google/uuid"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// Thresholds parameterizes the reminder bundle. Zero values are never used
// directly; callers start from DefaultThresholds.
type Thresholds struct {
	CustomerMinTx        int
	CustomerMinRevenue   float64
	CustomerInactiveDays int
	ProductMinTx         int
	ProductMinRevenue    float64
	ProductInactiveDays  int
	RecentDays           int
	WatchlistLimit       int
	RecentLimit          int
	TopLimit             int
	ComparisonLimit      int
}

// DefaultThresholds returns the production reminder tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CustomerMinTx:        DefaultCustomerMinTx,
		CustomerMinRevenue:   DefaultCustomerMinRevenue,
		CustomerInactiveDays: DefaultCustomerInactiveDays,
		ProductMinTx:         DefaultProductMinTx,
		ProductMinRevenue:    DefaultProductMinRevenue,
		ProductInactiveDays:  DefaultProductInactiveDays,
		RecentDays:           RecentDays,
		WatchlistLimit:       WatchlistLimit,
		RecentLimit:          RecentLimit,
		TopLimit:             TopLimit,
		ComparisonLimit:      ComparisonLimit,
	}
}

// DataPeriod is the date range covered by the loaded dataset.
type DataPeriod struct {
	From string `json:"desde"`
	To   string `json:"hasta"`
}

// CustomerSection and ProductSection wrap a row list with its description so
// downstream consumers get self-describing payloads.
type CustomerSection struct {
	Description string             `json:"descripcion"`
	Total       int                `json:"total,omitempty"`
	List        []CustomerActivity `json:"lista"`
}

type ProductSection struct {
	Description string            `json:"descripcion"`
	Total       int               `json:"total,omitempty"`
	List        []ProductActivity `json:"lista"`
}

// CustomerPeriodRow is one customer's three-month comparison on the wire.
type CustomerPeriodRow struct {
	Customer      string  `json:"cliente"`
	Current       float64 `json:"mes_actual"`
	Previous      float64 `json:"mes_anterior"`
	TwoAgo        float64 `json:"hace_2_meses"`
	DeltaPrevious float64 `json:"cambio_vs_anterior"`
	DeltaTwoAgo   float64 `json:"cambio_vs_hace_2"`
}

// ProductPeriodRow is one product's three-month comparison on the wire.
type ProductPeriodRow struct {
	Product       string  `json:"producto"`
	Current       float64 `json:"mes_actual"`
	Previous      float64 `json:"mes_anterior"`
	TwoAgo        float64 `json:"hace_2_meses"`
	DeltaPrevious float64 `json:"cambio_vs_anterior"`
	DeltaTwoAgo   float64 `json:"cambio_vs_hace_2"`
}

type CustomerComparisonSection struct {
	Description string              `json:"descripcion"`
	Months      MonthTriplet        `json:"meses"`
	List        []CustomerPeriodRow `json:"lista"`
}

type ProductComparisonSection struct {
	Description string             `json:"descripcion"`
	Months      MonthTriplet       `json:"meses"`
	List        []ProductPeriodRow `json:"lista"`
}

// Bundle is the complete reminder payload served on the reminders endpoint
// and pushed to the automation webhook. Both surfaces carry the same data.
type Bundle struct {
	GeneratedAt        string                    `json:"fecha_generacion"`
	ReportID           string                    `json:"reporte_id"`
	Period             DataPeriod                `json:"periodo_datos"`
	MonthlyTarget      MonthlyTarget             `json:"meta_ventas_mes"`
	InactiveCustomers  CustomerSection           `json:"clientes_inactivos_40"`
	StaleProducts      ProductSection            `json:"productos_sin_movimiento_40"`
	RecentCustomers    CustomerSection           `json:"clientes_recientes"`
	RecentProducts     ProductSection            `json:"productos_recientes"`
	TopCustomers       CustomerSection           `json:"top_clientes_historico"`
	TopProducts        ProductSection            `json:"top_productos_historico"`
	CustomerComparison CustomerComparisonSection `json:"comparacion_mensual_clientes"`
	ProductComparison  ProductComparisonSection  `json:"comparacion_mensual_productos"`
	ExecutiveSummary   string                    `json:"resumen_ejecutivo"`
}

// BuildBundle assembles the full reminder payload from the dataset. The
// reference date is the latest sale date, so reports stay meaningful for
// historical exports.
func BuildBundle(t sales.Table, now time.Time, th Thresholds) Bundle {
	asOf, _ := t.MaxDate()
	minDate, _ := t.MinDate()

	custStats := Relevant(GroupStats(t, asOf, ByCustomer), th.CustomerMinTx, th.CustomerMinRevenue)
	prodStats := Relevant(GroupStats(t, asOf, ByProduct), th.ProductMinTx, th.ProductMinRevenue)

	custWatch := Watchlist(custStats, th.CustomerInactiveDays, th.WatchlistLimit)
	prodWatch := Watchlist(prodStats, th.ProductInactiveDays, th.WatchlistLimit)
	custRecent := RecentActive(custStats, th.RecentDays, th.RecentLimit)
	prodRecent := RecentActive(prodStats, th.RecentDays, th.RecentLimit)
	custTop := TopByRevenue(custStats, th.TopLimit)
	prodTop := TopByRevenue(prodStats, th.TopLimit)

	custComp, months := ThreePeriodComparison(t, asOf, ByCustomer, th.ComparisonLimit)
	prodComp, _ := ThreePeriodComparison(t, asOf, ByProduct, th.ComparisonLimit)

	period := DataPeriod{}
	if !minDate.IsZero() {
		period.From = minDate.Format(dateFormat)
	}
	if !asOf.IsZero() {
		period.To = asOf.Format(dateFormat)
	}

	return Bundle{
		GeneratedAt:   now.Format(time.RFC3339),
		ReportID:      uuid.New().String(),
		Period:        period,
		MonthlyTarget: MonthlyComparison(t, asOf),
		InactiveCustomers: CustomerSection{
			Description: "Top 40 clientes importantes sin comprar >=90 días, ordenados por días (asc)",
			Total:       len(custWatch),
			List:        toCustomerActivity(custWatch, true),
		},
		StaleProducts: ProductSection{
			Description: "Top 40 productos importantes sin vender >=60 días, ordenados por días (asc)",
			Total:       len(prodWatch),
			List:        toProductActivity(prodWatch, true),
		},
		RecentCustomers: CustomerSection{
			Description: "Clientes que compraron en los últimos 7 días (top por ventas totales)",
			List:        toCustomerActivity(custRecent, false),
		},
		RecentProducts: ProductSection{
			Description: "Productos vendidos en los últimos 7 días (top por ventas totales)",
			List:        toProductActivity(prodRecent, false),
		},
		TopCustomers: CustomerSection{
			Description: "Top 20 clientes por ventas totales (sin importar fecha)",
			List:        toCustomerActivity(custTop, false),
		},
		TopProducts: ProductSection{
			Description: "Top 20 productos por ventas totales (sin importar fecha)",
			List:        toProductActivity(prodTop, false),
		},
		CustomerComparison: CustomerComparisonSection{
			Description: "Top 20 clientes - comparación 3 meses (mes actual, anterior, hace 2 meses)",
			Months:      months,
			List:        toCustomerPeriodRows(custComp),
		},
		ProductComparison: ProductComparisonSection{
			Description: "Top 20 productos - comparación 3 meses (mes actual, anterior, hace 2 meses)",
			Months:      months,
			List:        toProductPeriodRows(prodComp),
		},
		ExecutiveSummary: ExecutiveSummary(t, asOf),
	}
}

func toCustomerPeriodRows(comps []PeriodComparison) []CustomerPeriodRow {
	out := make([]CustomerPeriodRow, 0, len(comps))
	for _, c := range comps {
		out = append(out, CustomerPeriodRow{
			Customer:      c.Name,
			Current:       c.Current,
			Previous:      c.Previous,
			TwoAgo:        c.TwoAgo,
			DeltaPrevious: c.DeltaPrevious,
			DeltaTwoAgo:   c.DeltaTwoAgo,
		})
	}
	return out
}

func toProductPeriodRows(comps []PeriodComparison) []ProductPeriodRow {
	out := make([]ProductPeriodRow, 0, len(comps))
	for _, c := range comps {
		out = append(out, ProductPeriodRow{
			Product:       c.Name,
			Current:       c.Current,
			Previous:      c.Previous,
			TwoAgo:        c.TwoAgo,
			DeltaPrevious: c.DeltaPrevious,
			DeltaTwoAgo:   c.DeltaTwoAgo,
		})
	}
	return out
}
