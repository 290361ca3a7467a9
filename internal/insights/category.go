package insights

import (
	"regexp"
	"sort"
	"strings"

	"github.com/EmiMon6/dashboard-ventas/internal/sales"
)

// CategoryStats aggregates one category (or base-category group).
type CategoryStats struct {
	Category  string  `json:"categoria"`
	Revenue   float64 `json:"ventas"`
	Quantity  float64 `json:"cantidad"`
	Invoices  int     `json:"transacciones"`
	Customers int     `json:"clientes"`
	Products  int     `json:"productos"`
}

// UnknownCategory groups rows with no usable category value.
const UnknownCategory = "OTROS"

var categorySuffix = regexp.MustCompile(`[\s-]*\d+$`)

// BaseCategory strips the numeric size suffix off a category so variants like
// "TELA AUTO-1000" and "TELA AUTO-500" collapse into one group. A category
// that is nothing but a suffix keeps its original name.
func BaseCategory(cat string) string {
	if strings.TrimSpace(cat) == "" {
		return UnknownCategory
	}
	base := strings.TrimSpace(categorySuffix.ReplaceAllString(cat, ""))
	base = strings.TrimRight(base, " -")
	if base == "" {
		return cat
	}
	return base
}

// CategorySummary aggregates per category, top revenue first.
func CategorySummary(t sales.Table) []CategoryStats {
	return categorize(t, func(r sales.Record) string {
		if r.Category == "" {
			return UnknownCategory
		}
		return r.Category
	})
}

// GroupedCategorySummary aggregates per base category.
func GroupedCategorySummary(t sales.Table) []CategoryStats {
	return categorize(t, func(r sales.Record) string { return BaseCategory(r.Category) })
}

func categorize(t sales.Table, key func(sales.Record) string) []CategoryStats {
	type agg struct {
		revenue   float64
		quantity  float64
		invoices  map[string]struct{}
		customers map[string]struct{}
		products  map[string]struct{}
	}
	byCat := map[string]*agg{}
	for _, r := range t {
		cat := key(r)
		a, ok := byCat[cat]
		if !ok {
			a = &agg{
				invoices:  map[string]struct{}{},
				customers: map[string]struct{}{},
				products:  map[string]struct{}{},
			}
			byCat[cat] = a
		}
		a.revenue += r.NetAmount
		a.quantity += r.Quantity
		if r.InvoiceID != "" {
			a.invoices[r.InvoiceID] = struct{}{}
		}
		if r.Customer != "" {
			a.customers[r.Customer] = struct{}{}
		}
		if r.Product != "" {
			a.products[r.Product] = struct{}{}
		}
	}

	out := make([]CategoryStats, 0, len(byCat))
	for cat, a := range byCat {
		out = append(out, CategoryStats{
			Category:  cat,
			Revenue:   round2(a.revenue),
			Quantity:  a.quantity,
			Invoices:  len(a.invoices),
			Customers: len(a.customers),
			Products:  len(a.products),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}
