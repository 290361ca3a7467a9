package insights

import (
	"sort"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// YearSales is one calendar year's performance for the current month number.
type YearSales struct {
	Year     int     `json:"año"`
	Revenue  float64 `json:"ventas"`
	Invoices int     `json:"transacciones"`
	Quantity float64 `json:"cantidad"`
}

// MonthlyTarget compares the running month against the same calendar month of
// earlier years. The suggested target is 110% of the historical average; the
// projection extrapolates the partial total over the full month.
type MonthlyTarget struct {
	MonthName       string      `json:"mes_actual"`
	MonthNumber     int         `json:"numero_mes"`
	Year            int         `json:"año_actual"`
	CurrentSales    float64     `json:"ventas_actuales"`
	DaysElapsed     int         `json:"dias_transcurridos"`
	DaysInMonth     int         `json:"dias_en_mes"`
	ProjectedSales  float64     `json:"ventas_proyectadas"`
	HistoricalAvg   float64     `json:"promedio_historico"`
	HistoricalMax   float64     `json:"maximo_historico"`
	SuggestedTarget float64     `json:"meta_sugerida"`
	TargetPercent   float64     `json:"porcentaje_meta"`
	YearlyHistory   []YearSales `json:"historico_por_año"`
}

// MonthlyComparison builds the current-month target report. asOf is the
// latest date in the table; a zero asOf (empty dataset) yields a well-typed
// zero report.
func MonthlyComparison(t sales.Table, asOf time.Time) MonthlyTarget {
	if asOf.IsZero() {
		return MonthlyTarget{YearlyHistory: []YearSales{}}
	}
	month := asOf.Month()
	year := asOf.Year()

	monthRows := t.FilterMonth(month)
	type yearAgg struct {
		revenue  float64
		quantity float64
		invoices map[string]struct{}
	}
	byYear := map[int]*yearAgg{}
	for _, r := range monthRows {
		y := r.Date.Year()
		agg, ok := byYear[y]
		if !ok {
			agg = &yearAgg{invoices: map[string]struct{}{}}
			byYear[y] = agg
		}
		agg.revenue += r.NetAmount
		agg.quantity += r.Quantity
		if r.InvoiceID != "" {
			agg.invoices[r.InvoiceID] = struct{}{}
		}
	}

	history := make([]YearSales, 0, len(byYear))
	for y, agg := range byYear {
		history = append(history, YearSales{
			Year:     y,
			Revenue:  round2(agg.revenue),
			Invoices: len(agg.invoices),
			Quantity: agg.quantity,
		})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Year > history[j].Year })

	var avg, max, current float64
	histYears := 0
	for _, h := range history {
		switch {
		case h.Year < year:
			avg += h.Revenue
			histYears++
			if h.Revenue > max {
				max = h.Revenue
			}
		case h.Year == year:
			current += h.Revenue
		}
	}
	if histYears > 0 {
		avg /= float64(histYears)
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daysElapsed := asOf.Day()
	projected := 0.0
	if daysElapsed > 0 {
		projected = current / float64(daysElapsed) * float64(daysInMonth)
	}
	pct := 0.0
	if avg > 0 {
		pct = current / avg * 100
	}

	return MonthlyTarget{
		MonthName:       month.String(),
		MonthNumber:     int(month),
		Year:            year,
		CurrentSales:    round2(current),
		DaysElapsed:     daysElapsed,
		DaysInMonth:     daysInMonth,
		ProjectedSales:  round2(projected),
		HistoricalAvg:   round2(avg),
		HistoricalMax:   round2(max),
		SuggestedTarget: round2(avg * 1.1),
		TargetPercent:   round1(pct),
		YearlyHistory:   history,
	}
}
