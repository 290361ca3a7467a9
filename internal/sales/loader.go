package sales

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/EmiMon6/dashboard-ventas/internal/catalog"
)

// Recognized column headers, after trim+lowercase normalization. These match
// the POS export format (day/month/year dates, Spanish headers).
const (
	colDate     = "fecha"
	colCustomer = "cliente_nombre"
	colProduct  = "producto"
	colQuantity = "cantidad"
	colAmount   = "venta_neta"
	colInvoice  = "factura_id"
	colCategory = "categoria"
)

var dateLayouts = []string{"02/01/2006", "2/1/2006"}

// Loader reads a sales export, normalizes it into a Table and caches the
// result by path plus content signature. A fresh upload to the same path gets
// a new signature, so stale data is never served; the upload flow additionally
// calls Invalidate to drop the entry outright.
type Loader struct {
	matcher *catalog.Matcher

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	signature string
	table     Table
}

// NewLoader builds a Loader around the given product matcher.
func NewLoader(m *catalog.Matcher) *Loader {
	return &Loader{matcher: m, cache: make(map[string]cacheEntry)}
}

// Load reads the delimited file at path and returns the normalized table.
// Failures return an empty table together with the error; callers treat this
// as "no data", never as a fatal condition.
func (l *Loader) Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read sales file: %w", err)
	}
	sig := contentSignature(data)

	l.mu.Lock()
	if entry, ok := l.cache[path]; ok && entry.signature == sig {
		l.mu.Unlock()
		return entry.table.Copy(), nil
	}
	l.mu.Unlock()

	rows, err := parseRows(path, data)
	if err != nil {
		return Table{}, fmt.Errorf("parse sales file: %w", err)
	}
	table := l.buildTable(rows)

	l.mu.Lock()
	l.cache[path] = cacheEntry{signature: sig, table: table}
	l.mu.Unlock()

	return table.Copy(), nil
}

// Invalidate drops the cached table for one path. The upload flow must call
// this after overwriting the file, otherwise stale data would linger.
func (l *Loader) Invalidate(path string) {
	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
}

// InvalidateAll clears the whole cache.
func (l *Loader) InvalidateAll() {
	l.mu.Lock()
	l.cache = make(map[string]cacheEntry)
	l.mu.Unlock()
}

func contentSignature(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// parseRows turns the raw file into [][]string. CSV reads go through a
// BOM-tolerant UTF-8 decoder; .xlsx exports are read from the first sheet.
func parseRows(path string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	default:
		utf8Reader := transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder())
		r := csv.NewReader(utf8Reader)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	}
}

// buildTable coerces rows into records and applies product normalization.
// Per-cell failures degrade locally: bad dates become null dates, bad numbers
// become zero, and the row is always kept.
func (l *Loader) buildTable(rows [][]string) Table {
	if len(rows) < 2 {
		return Table{}
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	table := make(Table, 0, len(rows)-1)
	seen := map[string]struct{}{}
	labels := make([]string, 0, 64)
	for _, row := range rows[1:] {
		rec := Record{
			InvoiceID:  cell(row, cols, colInvoice),
			Customer:   cell(row, cols, colCustomer),
			RawProduct: cell(row, cols, colProduct),
			Category:   cell(row, cols, colCategory),
			Quantity:   parseNumber(cell(row, cols, colQuantity)),
			NetAmount:  parseNumber(cell(row, cols, colAmount)),
		}
		rec.Date, rec.HasDate = parseDate(cell(row, cols, colDate))
		table = append(table, rec)

		if rec.RawProduct != "" {
			if _, ok := seen[rec.RawProduct]; !ok {
				seen[rec.RawProduct] = struct{}{}
				labels = append(labels, rec.RawProduct)
			}
		}
	}

	mapping := l.matcher.BuildMapping(labels)
	for i := range table {
		table[i].Product = mapping[table[i].RawProduct]
	}
	return table
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a numeric cell, falling back to zero. A malformed cell
// must not abort the load.
func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
