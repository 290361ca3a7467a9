package insights

import (
	"sort"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// MonthPoint is one month-year revenue point on the trend line.
type MonthPoint struct {
	Month   string  `json:"mes_anio"`
	Revenue float64 `json:"venta_neta"`
}

// MonthlyTrend sums revenue per month-year, ascending. Rows without a valid
// date have no month and are excluded.
func MonthlyTrend(t sales.Table) []MonthPoint {
	byMonth := map[string]float64{}
	for _, r := range t {
		if !r.HasDate {
			continue
		}
		byMonth[r.Date.Format("2006-01")] += r.NetAmount
	}
	out := make([]MonthPoint, 0, len(byMonth))
	for m, v := range byMonth {
		out = append(out, MonthPoint{Month: m, Revenue: round2(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// SeasonalityRow is one calendar month's all-time total with its band:
// Alto above 110% of the cross-month mean, Bajo below 90%, Normal otherwise.
type SeasonalityRow struct {
	MonthNumber int     `json:"num_mes"`
	MonthName   string  `json:"nombre_mes"`
	Revenue     float64 `json:"venta_neta"`
	Status      string  `json:"status"`
}

// Seasonality shows which calendar months historically sell more.
func Seasonality(t sales.Table) []SeasonalityRow {
	totals := map[time.Month]float64{}
	for _, r := range t {
		if r.HasDate {
			totals[r.Date.Month()] += r.NetAmount
		}
	}
	if len(totals) == 0 {
		return []SeasonalityRow{}
	}
	mean := 0.0
	for _, v := range totals {
		mean += v
	}
	mean /= float64(len(totals))

	out := make([]SeasonalityRow, 0, len(totals))
	for m := time.January; m <= time.December; m++ {
		v, ok := totals[m]
		if !ok {
			continue
		}
		status := "Normal"
		if v > mean*1.1 {
			status = "Alto"
		} else if v < mean*0.9 {
			status = "Bajo"
		}
		out = append(out, SeasonalityRow{
			MonthNumber: int(m),
			MonthName:   m.String(),
			Revenue:     round2(v),
			Status:      status,
		})
	}
	return out
}

// Basket is the set of distinct normalized products on one invoice. Baskets
// feed the external association-rule miner; support/confidence/lift are
// computed there, not here.
type Basket struct {
	InvoiceID string   `json:"factura_id"`
	Products  []string `json:"productos"`
}

// InvoiceBaskets groups distinct products per invoice, both levels sorted for
// stable output.
func InvoiceBaskets(t sales.Table) []Basket {
	byInvoice := map[string]map[string]struct{}{}
	for _, r := range t {
		if r.InvoiceID == "" || r.Product == "" {
			continue
		}
		set, ok := byInvoice[r.InvoiceID]
		if !ok {
			set = map[string]struct{}{}
			byInvoice[r.InvoiceID] = set
		}
		set[r.Product] = struct{}{}
	}
	out := make([]Basket, 0, len(byInvoice))
	for id, set := range byInvoice {
		products := make([]string, 0, len(set))
		for p := range set {
			products = append(products, p)
		}
		sort.Strings(products)
		out = append(out, Basket{InvoiceID: id, Products: products})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceID < out[j].InvoiceID })
	return out
}
