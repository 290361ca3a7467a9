package sales

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTable() Table {
	return Table{
		{InvoiceID: "F1", Customer: "ACME", Product: "TELA AUTO", Date: day(2024, 1, 10), HasDate: true, NetAmount: 100},
		{InvoiceID: "F2", Customer: "BETA", Product: "PVC BONDE", Date: day(2024, 2, 5), HasDate: true, NetAmount: 200},
		{InvoiceID: "F3", Customer: "ACME", Product: "TELA AUTO", Date: day(2023, 2, 20), HasDate: true, NetAmount: 50},
		{InvoiceID: "F4", Customer: "GAMMA", Product: "TELA AUTO", NetAmount: 75}, // null date
	}
}

func TestMaxMinDate(t *testing.T) {
	tbl := sampleTable()
	max, ok := tbl.MaxDate()
	if !ok || !max.Equal(day(2024, 2, 5)) {
		t.Errorf("MaxDate = %v ok=%v", max, ok)
	}
	min, ok := tbl.MinDate()
	if !ok || !min.Equal(day(2023, 2, 20)) {
		t.Errorf("MinDate = %v ok=%v", min, ok)
	}
	if _, ok := (Table{}).MaxDate(); ok {
		t.Error("empty table has no max date")
	}
}

func TestFilterMonthSpansYears(t *testing.T) {
	got := sampleTable().FilterMonth(time.February)
	if len(got) != 2 {
		t.Fatalf("FilterMonth(February) = %d rows, want 2 (both years)", len(got))
	}
}

func TestFilterRangeExcludesNullDates(t *testing.T) {
	got := sampleTable().FilterRange(day(2023, 1, 1), day(2024, 12, 31))
	if len(got) != 3 {
		t.Fatalf("FilterRange = %d rows, want 3 (null-date row excluded)", len(got))
	}
}

func TestFiltersDoNotMutateSource(t *testing.T) {
	tbl := sampleTable()
	filtered := tbl.FilterCustomer("ACME")
	if len(filtered) != 2 {
		t.Fatalf("FilterCustomer = %d rows, want 2", len(filtered))
	}
	filtered[0].NetAmount = -999
	if tbl[0].NetAmount != 100 {
		t.Error("mutating a filtered copy leaked into the source table")
	}
}
