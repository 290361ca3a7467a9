package insight

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/catalog"
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
	"github.com/EmiMon6/dashboard-ventas/internal/webhook"
)

const sampleCSV = `fecha,cliente_nombre,producto,cantidad,venta_neta,factura_id,categoria
01/06/2024,ACME,TELA AUTO GRIS,2,1500.50,F-1,TELAS-100
15/06/2024,ACME,CHENILLE PREMIUM,1,800,F-2,TELAS-100
20/01/2024,BETA,ARRENDAMIENTO LOCAL,1,30000,F-3,SERVICIOS
`

func newTestRouter(t *testing.T, csv string) (*httptest.Server, string, *sales.Loader) {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "ventas.csv")
	if csv != "" {
		if err := os.WriteFile(dataPath, []byte(csv), 0644); err != nil {
			t.Fatal(err)
		}
	}
	loader := sales.NewLoader(catalog.NewMatcher(catalog.CanonicalProducts))
	srv := httptest.NewServer(NewRouter(loader, webhook.NewClient("", time.Second), dataPath))
	t.Cleanup(srv.Close)
	return srv, dataPath, loader
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	var got map[string]string
	if code := getJSON(t, srv.URL+"/", &got); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if got["status"] != "ok" || got["message"] != "Dashboard Ventas API" {
		t.Errorf("health = %v", got)
	}
}

func TestReminders(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	var got map[string]json.RawMessage
	if code := getJSON(t, srv.URL+"/api/reminders", &got); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, key := range []string{"fecha_generacion", "meta_ventas_mes", "clientes_inactivos_40", "resumen_ejecutivo"} {
		if _, ok := got[key]; !ok {
			t.Errorf("reminders payload missing %q", key)
		}
	}
	var period struct {
		From string `json:"desde"`
		To   string `json:"hasta"`
	}
	if err := json.Unmarshal(got["periodo_datos"], &period); err != nil {
		t.Fatalf("periodo_datos: %v", err)
	}
	if period.From != "2024-01-20" || period.To != "2024-06-20" {
		t.Errorf("period = %+v", period)
	}
}

func TestKPIs(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	var got struct {
		TotalRevenue float64 `json:"total_revenue"`
		TotalOrders  int     `json:"total_orders"`
	}
	getJSON(t, srv.URL+"/api/kpis", &got)
	if got.TotalRevenue != 32300.5 {
		t.Errorf("revenue = %v, want 32300.5", got.TotalRevenue)
	}
	if got.TotalOrders != 3 {
		t.Errorf("orders = %d, want 3", got.TotalOrders)
	}
}

func TestKPIsRangeFilter(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	var got struct {
		TotalRevenue float64 `json:"total_revenue"`
	}
	getJSON(t, srv.URL+"/api/kpis?desde=2024-06-01&hasta=2024-06-30", &got)
	if got.TotalRevenue != 2300.5 {
		t.Errorf("filtered revenue = %v, want 2300.5", got.TotalRevenue)
	}
}

func TestCategoriesGrouped(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	var got struct {
		Categories []struct {
			Category string  `json:"categoria"`
			Revenue  float64 `json:"ventas"`
		} `json:"categorias"`
	}
	getJSON(t, srv.URL+"/api/categorias?agrupadas=1", &got)
	if len(got.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(got.Categories))
	}
	if got.Categories[0].Category != "SERVICIOS" {
		t.Errorf("top category = %q, want SERVICIOS", got.Categories[0].Category)
	}
	found := false
	for _, c := range got.Categories {
		if c.Category == "TELAS" && c.Revenue == 2300.5 {
			found = true
		}
	}
	if !found {
		t.Errorf("TELAS-100 should group into TELAS: %+v", got.Categories)
	}
}

func TestInactiveCustomersThresholdParam(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	var got struct {
		ThresholdDays int `json:"umbral_dias"`
	}
	getJSON(t, srv.URL+"/api/reminders/clientes-inactivos?dias=30", &got)
	if got.ThresholdDays != 30 {
		t.Errorf("threshold = %d, want 30", got.ThresholdDays)
	}
}

func TestUploadDataInvalidatesCache(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)

	var before struct {
		TotalOrders int `json:"total_orders"`
	}
	getJSON(t, srv.URL+"/api/kpis", &before)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "nuevo.csv")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("fecha,cliente_nombre,producto,cantidad,venta_neta,factura_id,categoria\n01/07/2024,ACME,TELA AUTO,1,100,F-9,TELAS\n"))
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/upload-data", mw.FormDataContentType(), body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var uploaded struct {
		Success bool   `json:"success"`
		BatchID string `json:"batch_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatal(err)
	}
	if !uploaded.Success || uploaded.BatchID == "" {
		t.Fatalf("upload response = %+v", uploaded)
	}

	var after struct {
		TotalOrders int `json:"total_orders"`
	}
	getJSON(t, srv.URL+"/api/kpis", &after)
	if after.TotalOrders != 1 {
		t.Errorf("orders after upload = %d, want 1 (cache must refresh)", after.TotalOrders)
	}
}

func TestUploadDataMissingFile(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	resp, err := http.Post(srv.URL+"/api/upload-data", "application/json", bytes.NewBufferString("{}"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPushToN8N(t *testing.T) {
	var received map[string]json.RawMessage
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer hook.Close()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "ventas.csv")
	if err := os.WriteFile(dataPath, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	loader := sales.NewLoader(catalog.NewMatcher(catalog.CanonicalProducts))
	srv := httptest.NewServer(NewRouter(loader, webhook.NewClient(hook.URL, 5*time.Second), dataPath))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/push-to-n8n", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got struct {
		Success     bool           `json:"success"`
		StatusCode  int            `json:"n8n_status_code"`
		DataPreview map[string]int `json:"data_preview"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || got.StatusCode != http.StatusOK {
		t.Fatalf("push result = %+v", got)
	}
	if _, ok := received["resumen_ejecutivo"]; !ok {
		t.Errorf("webhook did not receive the bundle: %v", received)
	}
	if _, ok := got.DataPreview["clientes_inactivos"]; !ok {
		t.Errorf("data_preview missing counts: %+v", got.DataPreview)
	}
}

func TestPushToN8NUnconfigured(t *testing.T) {
	srv, _, _ := newTestRouter(t, sampleCSV)
	resp, err := http.Post(srv.URL+"/api/push-to-n8n", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Success || got.Error == "" {
		t.Errorf("push without webhook URL = %+v, want failure value", got)
	}
}

func TestMissingDataFileIsEmptyDataset(t *testing.T) {
	srv, _, _ := newTestRouter(t, "")
	var got struct {
		TotalOrders int `json:"total_orders"`
	}
	if code := getJSON(t, srv.URL+"/api/kpis", &got); code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for missing data file", code)
	}
	if got.TotalOrders != 0 {
		t.Errorf("orders = %d, want 0", got.TotalOrders)
	}
}
