package monitor

import (
	"fmt"
	"runtime"
	"time"

	"github.com/EmiMon6/dashboard-ventas/internal/logger"
	"github.com/EmiMon6/dashboard-ventas/internal/serviceiface"
)

// MonitorService logs a periodic process heartbeat with memory and goroutine
// counts, so a stalled scheduler or a leaking handler shows up in the logs.
type MonitorService struct {
	config            map[string]interface{}
	stopChan          chan struct{}
	heartbeatInterval time.Duration
}

func NewMonitorService(cfg map[string]interface{}) serviceiface.Service {
	interval := 60 * time.Second
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case int:
			interval = time.Duration(v) * time.Second
		case float64:
			interval = time.Duration(v) * time.Second
		}
	}
	return &MonitorService{
		config:            cfg,
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
	}
}

func (m *MonitorService) Name() string { return "monitor" }

func (m *MonitorService) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Monitor started")
	}
	go m.heartbeatLoop()
	return nil
}

func (m *MonitorService) Stop() error {
	close(m.stopChan)
	return nil
}

func (m *MonitorService) heartbeatLoop() {
	ticker := time.NewTicker(m.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf(
					"heartbeat: heap=%dMB goroutines=%d",
					ms.HeapAlloc/1024/1024, runtime.NumGoroutine()))
			}
		}
	}
}
