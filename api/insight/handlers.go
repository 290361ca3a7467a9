package insight

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/EmiMon6/dashboard-ventas/api"
	"github.com/EmiMon6/dashboard-ventas/api/constants"
	"github.com/EmiMon6/dashboard-ventas/internal/insights"
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
	"github.com/EmiMon6/dashboard-ventas/internal/webhook"
)

type handlers struct {
	loader   *sales.Loader
	client   *webhook.Client
	dataPath string
}

func (h *handlers) Health(w http.ResponseWriter, r *http.Request) {
	api.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Dashboard Ventas API",
	})
}

// load fetches the dataset through the cached loader. A missing data file is
// an empty dataset, not a failure; other read failures answer the request
// themselves and report false.
func (h *handlers) load(w http.ResponseWriter) (sales.Table, bool) {
	table, err := h.loader.Load(h.dataPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sales.Table{}, true
		}
		api.LogError("loading %s: %v", h.dataPath, err)
		api.RespondWithError(w, http.StatusInternalServerError, constants.ErrLoadFailed)
		return nil, false
	}
	return table, true
}

func (h *handlers) UploadData(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileRequired)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(filepath.Dir(h.dataPath), 0755); err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	dst, err := os.Create(h.dataPath)
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.loader.Invalidate(h.dataPath)
	batchID := uuid.New().String()
	api.LogInfo("data file replaced, batch %s", batchID)
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Archivo actualizado en " + h.dataPath,
		"batch_id": batchID,
	})
}

func (h *handlers) Reminders(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	bundle := insights.BuildBundle(table, time.Now(), insights.DefaultThresholds())
	api.RespondWithJSON(w, http.StatusOK, bundle)
}

func (h *handlers) PushToN8N(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	bundle := insights.BuildBundle(table, time.Now(), insights.DefaultThresholds())
	result := h.client.Push(r.Context(), bundle)
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":         result.Success,
		"message":         result.Message,
		"n8n_status_code": result.StatusCode,
		"n8n_response":    result.Response,
		"error":           result.Error,
		"data_preview": map[string]int{
			"clientes_inactivos":       len(bundle.InactiveCustomers.List),
			"productos_sin_movimiento": len(bundle.StaleProducts.List),
			"clientes_recientes":       len(bundle.RecentCustomers.List),
			"productos_recientes":      len(bundle.RecentProducts.List),
		},
	})
}

func (h *handlers) MonthlyTarget(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	asOf, _ := table.MaxDate()
	api.RespondWithJSON(w, http.StatusOK, insights.MonthlyComparison(table, asOf))
}

func (h *handlers) InactiveCustomers(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	days := insights.DefaultCustomerInactiveDays
	if v := r.URL.Query().Get("dias"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	asOf, _ := table.MaxDate()
	api.RespondWithJSON(w, http.StatusOK, insights.InactiveCustomers(table, asOf, days))
}

func (h *handlers) StaleProducts(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	days := insights.DefaultProductInactiveDays
	if v := r.URL.Query().Get("dias"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	asOf, _ := table.MaxDate()
	api.RespondWithJSON(w, http.StatusOK, insights.StaleProducts(table, asOf, days))
}

func (h *handlers) RFM(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	asOf, _ := table.MaxDate()
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"clientes": insights.RFMScores(filterRange(table, r), asOf),
	})
}

func (h *handlers) KPIs(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	api.RespondWithJSON(w, http.StatusOK, insights.KPIs(filterRange(table, r)))
}

func (h *handlers) Categories(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	table = filterRange(table, r)
	var stats []insights.CategoryStats
	if r.URL.Query().Get("agrupadas") == "1" {
		stats = insights.GroupedCategorySummary(table)
	} else {
		stats = insights.CategorySummary(table)
	}
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"categorias": stats})
}

func (h *handlers) Baskets(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"canastas": insights.InvoiceBaskets(filterRange(table, r)),
	})
}

func (h *handlers) Trend(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w)
	if !ok {
		return
	}
	table = filterRange(table, r)
	api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"mensual":        insights.MonthlyTrend(table),
		"estacionalidad": insights.Seasonality(table),
	})
}

// filterRange applies optional ?desde=YYYY-MM-DD&hasta=YYYY-MM-DD bounds.
// Unparseable or missing bounds leave that side open.
func filterRange(t sales.Table, r *http.Request) sales.Table {
	q := r.URL.Query()
	fromStr, toStr := q.Get("desde"), q.Get("hasta")
	if fromStr == "" && toStr == "" {
		return t
	}
	from, okFrom := parseDay(fromStr)
	to, okTo := parseDay(toStr)
	if !okFrom {
		from, _ = t.MinDate()
	}
	if !okTo {
		to, _ = t.MaxDate()
	}
	return t.FilterRange(from, to)
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(constants.DateFormat, s)
	return t, err == nil
}
