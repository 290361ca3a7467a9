package insight

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/EmiMon6/dashboard-ventas/internal/config"
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
	"github.com/EmiMon6/dashboard-ventas/internal/webhook"
)

func StartInsightService(cfg map[string]interface{}, loader *sales.Loader, client *webhook.Client) {
	port := config.DefaultInsightPort
	if p, ok := cfg["port"].(string); ok && p != "" {
		port = p
	}
	dataPath := config.DefaultDataPath
	if p, ok := cfg["data_path"].(string); ok && p != "" {
		dataPath = p
	}

	router := NewRouter(loader, client, dataPath)
	log.Println("Insight Service started on", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Insight Service failed: %v", err)
	}
}

// NewRouter builds the insight API routes over the shared loader and webhook
// client. Split out from StartInsightService so tests can drive it directly.
func NewRouter(loader *sales.Loader, client *webhook.Client, dataPath string) *mux.Router {
	h := &handlers{loader: loader, client: client, dataPath: dataPath}

	r := mux.NewRouter()
	r.HandleFunc("/", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/upload-data", h.UploadData).Methods(http.MethodPost)
	r.HandleFunc("/api/push-to-n8n", h.PushToN8N).Methods(http.MethodPost)
	r.HandleFunc("/api/reminders", h.Reminders).Methods(http.MethodGet)
	r.HandleFunc("/api/reminders/meta-ventas", h.MonthlyTarget).Methods(http.MethodGet)
	r.HandleFunc("/api/reminders/clientes-inactivos", h.InactiveCustomers).Methods(http.MethodGet)
	r.HandleFunc("/api/reminders/productos-sin-movimiento", h.StaleProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/rfm", h.RFM).Methods(http.MethodGet)
	r.HandleFunc("/api/kpis", h.KPIs).Methods(http.MethodGet)
	r.HandleFunc("/api/categorias", h.Categories).Methods(http.MethodGet)
	r.HandleFunc("/api/canastas", h.Baskets).Methods(http.MethodGet)
	r.HandleFunc("/api/tendencia", h.Trend).Methods(http.MethodGet)
	return r
}
