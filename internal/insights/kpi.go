package insights

import (
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// KPI holds the headline dashboard numbers.
type KPI struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int     `json:"total_orders"`
	TotalItems    float64 `json:"total_items"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// KPIs computes total revenue, distinct orders, units sold and average ticket.
func KPIs(t sales.Table) KPI {
	var revenue, items float64
	invoices := map[string]struct{}{}
	for _, r := range t {
		revenue += r.NetAmount
		items += r.Quantity
		if r.InvoiceID != "" {
			invoices[r.InvoiceID] = struct{}{}
		}
	}
	avg := 0.0
	if len(invoices) > 0 {
		avg = revenue / float64(len(invoices))
	}
	return KPI{
		TotalRevenue:  round2(revenue),
		TotalOrders:   len(invoices),
		TotalItems:    items,
		AvgOrderValue: round2(avg),
	}
}
