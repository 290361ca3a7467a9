package insight

import (
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
	"github.com/EmiMon6/dashboard-ventas/internal/serviceiface"
	"github.com/EmiMon6/dashboard-ventas/internal/webhook"
)

type InsightService struct {
	config map[string]interface{}
	loader *sales.Loader
	client *webhook.Client
}

func NewInsightService(cfg map[string]interface{}, loader *sales.Loader, client *webhook.Client) serviceiface.Service {
	return &InsightService{config: cfg, loader: loader, client: client}
}

func (s *InsightService) Name() string {
	return "insight"
}

func (s *InsightService) Start() error {
	go StartInsightService(s.config, s.loader, s.client)
	return nil
}

func (s *InsightService) Stop() error {
	return nil
}
