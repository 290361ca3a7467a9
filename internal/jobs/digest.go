package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/EmiMon6/dashboard-ventas/internal/config"
	"github.com/EmiMon6/dashboard-ventas/internal/insights"
	"github.com/EmiMon6/dashboard-ventas/internal/logger"
	"github.com/EmiMon6/dashboard-ventas/internal/sales"
	"github.com/EmiMon6/dashboard-ventas/internal/serviceiface"
	"github.com/EmiMon6/dashboard-ventas/internal/webhook"
)

// DigestConfig drives the scheduled reminder push.
type DigestConfig struct {
	Schedule string
	TimeZone string
	DataPath string
}

func NewDefaultDigestConfig() DigestConfig {
	return DigestConfig{
		Schedule: config.DefaultDigestSchedule,
		TimeZone: config.DefaultTimeZone,
		DataPath: config.DefaultDataPath,
	}
}

type DigestService struct {
	config map[string]interface{}
	loader *sales.Loader
	client *webhook.Client
	cron   *cron.Cron
}

func NewDigestService(cfg map[string]interface{}, loader *sales.Loader, client *webhook.Client) serviceiface.Service {
	return &DigestService{
		config: cfg,
		loader: loader,
		client: client,
	}
}

func (s *DigestService) Name() string {
	return "digest"
}

func (s *DigestService) Start() error {
	digestConfig := NewDefaultDigestConfig()

	// Override digest config from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["schedule"].(string); ok && schedule != "" {
			digestConfig.Schedule = schedule
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			digestConfig.TimeZone = tz
		}
		if path, ok := s.config["data_path"].(string); ok && path != "" {
			digestConfig.DataPath = path
		}
	}

	c, err := RunDigestScheduler(digestConfig, s.loader, s.client)
	if err != nil {
		return fmt.Errorf("failed to start digest scheduler: %v", err)
	}
	s.cron = c

	logger.GlobalLogger.LogAudit("Digest scheduler started")
	log.Println("Digest service started — reminder push scheduled")
	return nil
}

func (s *DigestService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

// RunDigestScheduler schedules the daily reminder build-and-push. The payload
// is rebuilt from the data file on every run so a fresh upload is picked up
// without a restart.
func RunDigestScheduler(cfg DigestConfig, loader *sales.Loader, client *webhook.Client) (*cron.Cron, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultDigestSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}
	if cfg.DataPath == "" {
		cfg.DataPath = config.DefaultDataPath
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Invalid timezone %s, falling back to UTC: %v", cfg.TimeZone, err))
	}

	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Starting digest push at %s", time.Now().In(loc).Format(time.RFC3339)))
		if err := PushDigest(cfg.DataPath, loader, client); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Digest push failed: %v", err))
			log.Printf("ERROR: Digest push failed: %v", err)
		} else {
			logger.GlobalLogger.LogAudit("Digest push completed successfully")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("unable to schedule digest push: %v", err)
	}

	c.Start()
	return c, nil
}

// PushDigest loads the dataset, builds the reminder bundle and delivers it.
func PushDigest(dataPath string, loader *sales.Loader, client *webhook.Client) error {
	table, err := loader.Load(dataPath)
	if err != nil {
		return fmt.Errorf("load sales data: %v", err)
	}
	if len(table) == 0 {
		return fmt.Errorf("no sales data at %s", dataPath)
	}
	bundle := insights.BuildBundle(table, time.Now(), insights.DefaultThresholds())
	res := client.Push(context.Background(), bundle)
	if !res.Success {
		return fmt.Errorf("webhook push: %s", res.Error)
	}
	log.Printf("[INFO] Digest delivered, receiver status %d", res.StatusCode)
	return nil
}
