package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/EmiMon6/dashboard-ventas/internal/appmanager"
	"github.com/EmiMon6/dashboard-ventas/internal/catalog"
	"github.com/EmiMon6/dashboard-ventas/internal/config"
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
	"github.com/EmiMon6/dashboard-ventas/internal/webhook"
)

func main() {
	// Load .env for local dev
	_ = godotenv.Load("../.env")

	matcher := catalog.NewMatcher(catalog.CanonicalProducts)
	appmanager.SetLoader(sales.NewLoader(matcher))

	timeout := time.Duration(config.DefaultWebhookTimeout) * time.Second
	appmanager.SetWebhook(webhook.NewClient(os.Getenv("WEBHOOK_URL"), timeout))

	manager := appmanager.NewAppManager()

	// Load service configs from YAML
	servicesCfg, err := appmanager.LoadServiceSequence("../services.yaml")
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}

	// Automatically register all services
	manager.AutoRegisterServices(servicesCfg)

	// Start all services
	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	// Stop all services
	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
