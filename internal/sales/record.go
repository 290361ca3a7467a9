package sales

import "time"

// Record is one invoice line from the point-of-sale export, after
// normalization. Product carries the canonical (or cleaned fallback) name;
// RawProduct preserves the label as uploaded, for audit and display.
type Record struct {
	InvoiceID  string
	Customer   string
	Product    string
	RawProduct string
	Category   string
	Date       time.Time
	HasDate    bool
	Quantity   float64
	NetAmount  float64
}

// Table is the normalized dataset every report consumes. It is effectively
// immutable after load: helpers return fresh slices of copied records, and
// aggregation code must never mutate a table it was handed.
type Table []Record

// Copy returns an independent copy of the table.
func (t Table) Copy() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// MaxDate returns the latest valid transaction date. This is the "as-of"
// reference for every recency computation, not the wall clock, so reports
// stay reproducible against historical snapshots.
func (t Table) MaxDate() (time.Time, bool) {
	var max time.Time
	found := false
	for _, r := range t {
		if r.HasDate && (!found || r.Date.After(max)) {
			max = r.Date
			found = true
		}
	}
	return max, found
}

// MinDate returns the earliest valid transaction date.
func (t Table) MinDate() (time.Time, bool) {
	var min time.Time
	found := false
	for _, r := range t {
		if r.HasDate && (!found || r.Date.Before(min)) {
			min = r.Date
			found = true
		}
	}
	return min, found
}

// FilterRange keeps rows whose date falls in [from, to], inclusive. Rows with
// an unparseable date have no date-derived fields and are excluded.
func (t Table) FilterRange(from, to time.Time) Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if !r.HasDate {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterMonth keeps rows from the given calendar month number, across all
// years. Monthly comparisons work on month numbers, not rolling windows.
func (t Table) FilterMonth(month time.Month) Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if r.HasDate && r.Date.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// FilterCustomer keeps rows for one customer.
func (t Table) FilterCustomer(name string) Table {
	out := make(Table, 0)
	for _, r := range t {
		if r.Customer == name {
			out = append(out, r)
		}
	}
	return out
}

// FilterProduct keeps rows for one normalized product.
func (t Table) FilterProduct(name string) Table {
	out := make(Table, 0)
	for _, r := range t {
		if r.Product == name {
			out = append(out, r)
		}
	}
	return out
}

// FilterCategory keeps rows for one category.
func (t Table) FilterCategory(cat string) Table {
	out := make(Table, 0)
	for _, r := range t {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}
