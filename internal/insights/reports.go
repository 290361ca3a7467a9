package insights

import (
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// Default relevance and inactivity thresholds, as tuned on the production
// dashboard.
const (
	DefaultCustomerMinTx        = 5
	DefaultCustomerMinRevenue   = 5000.0
	DefaultCustomerInactiveDays = 90

	DefaultProductMinTx        = 10
	DefaultProductMinRevenue   = 5000.0
	DefaultProductInactiveDays = 60

	// The prioritized risk list uses a looser relevance filter.
	RiskListMinTx   = 3
	RiskListLimit   = 20
	StaleTopPool    = 50
	RecentDays      = 7
	WatchlistLimit  = 40
	RecentLimit     = 15
	TopLimit        = 20
	ComparisonLimit = 20
)

const dateFormat = "2006-01-02"

// CustomerActivity is the wire form of one customer's activity row.
type CustomerActivity struct {
	Customer     string  `json:"cliente"`
	DaysSince    int     `json:"dias_sin_compra"`
	Revenue      float64 `json:"total_ventas"`
	Transactions int     `json:"transacciones"`
	LastPurchase string  `json:"ultima_compra,omitempty"`
}

// ProductActivity is the wire form of one product's activity row.
type ProductActivity struct {
	Product      string  `json:"producto"`
	DaysSince    int     `json:"dias_sin_venta"`
	Revenue      float64 `json:"total_ventas"`
	Transactions int     `json:"transacciones"`
	LastSale     string  `json:"ultima_venta,omitempty"`
}

func toCustomerActivity(stats []EntityStats, withDate bool) []CustomerActivity {
	out := make([]CustomerActivity, 0, len(stats))
	for _, s := range stats {
		row := CustomerActivity{
			Customer:     s.Name,
			DaysSince:    s.DaysInactive,
			Revenue:      round2(s.Revenue),
			Transactions: s.Transactions,
		}
		if withDate && s.HasActivity {
			row.LastPurchase = s.LastActivity.Format(dateFormat)
		}
		out = append(out, row)
	}
	return out
}

func toProductActivity(stats []EntityStats, withDate bool) []ProductActivity {
	out := make([]ProductActivity, 0, len(stats))
	for _, s := range stats {
		row := ProductActivity{
			Product:      s.Name,
			DaysSince:    s.DaysInactive,
			Revenue:      round2(s.Revenue),
			Transactions: s.Transactions,
		}
		if withDate && s.HasActivity {
			row.LastSale = s.LastActivity.Format(dateFormat)
		}
		out = append(out, row)
	}
	return out
}

// InactiveCustomersReport is the prioritized customer risk list: relevant
// customers inactive for strictly more than the threshold, highest historical
// revenue first, with the total value at risk.
type InactiveCustomersReport struct {
	ThresholdDays int                `json:"umbral_dias"`
	TotalInactive int                `json:"clientes_inactivos_total"`
	ValueAtRisk   float64            `json:"valor_en_riesgo"`
	Customers     []CustomerActivity `json:"clientes_prioritarios"`
}

// InactiveCustomers builds the customer risk list against the as-of date.
func InactiveCustomers(t sales.Table, asOf time.Time, thresholdDays int) InactiveCustomersReport {
	stats := Relevant(GroupStats(t, asOf, ByCustomer), RiskListMinTx, DefaultCustomerMinRevenue)
	inactive, valueAtRisk := AtRisk(stats, thresholdDays, 0)
	total := len(inactive)
	if total > RiskListLimit {
		inactive = inactive[:RiskListLimit]
	}
	return InactiveCustomersReport{
		ThresholdDays: thresholdDays,
		TotalInactive: total,
		ValueAtRisk:   round2(valueAtRisk),
		Customers:     toCustomerActivity(inactive, true),
	}
}

// StaleProductsReport flags historically strong sellers with no recent
// movement: the top revenue pool filtered to entries past the threshold.
type StaleProductsReport struct {
	ThresholdDays    int               `json:"umbral_dias"`
	AffectedProducts int               `json:"productos_afectados"`
	Products         []ProductActivity `json:"productos"`
}

// StaleProducts builds the stale top-product report against the as-of date.
func StaleProducts(t sales.Table, asOf time.Time, thresholdDays int) StaleProductsReport {
	top := TopByRevenue(GroupStats(t, asOf, ByProduct), StaleTopPool)
	stale := make([]EntityStats, 0)
	for _, s := range top {
		if s.HasActivity && s.DaysInactive > thresholdDays {
			stale = append(stale, s)
		}
	}
	sortByRevenueDesc(stale)
	return StaleProductsReport{
		ThresholdDays:    thresholdDays,
		AffectedProducts: len(stale),
		Products:         toProductActivity(stale, true),
	}
}
