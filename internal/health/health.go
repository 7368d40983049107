package health

import (
	"context"
	"runtime"
	"time"

	"hrms-backend/internal/cache"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db      Pinger
	version string
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Version  string         `json:"version,omitempty"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// DetailedStatus adds cache and host figures for dashboards.
type DetailedStatus struct {
	HealthStatus
	Redis      string  `json:"redis"`
	Goroutines int     `json:"goroutines"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"memory_percent"`
	MemUsedMB  uint64  `json:"memory_used_mb"`
}

func NewHealthChecker(db Pinger, version string) *HealthChecker {
	return &HealthChecker{db: db, version: version}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	dbHealth := h.checkDatabase(ctx)

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Version:  h.version,
		Database: dbHealth,
	}
}

func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	out := DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		Redis:        "disabled",
		Goroutines:   runtime.NumGoroutine(),
	}
	if cache.GetClient() != nil {
		out.Redis = "unhealthy"
		if cache.IsHealthy() {
			out.Redis = "healthy"
		}
	}

	if percents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(percents) > 0 {
		out.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		out.MemPercent = vm.UsedPercent
		out.MemUsedMB = vm.Used / 1024 / 1024
	}
	return out
}

func (h *HealthChecker) checkDatabase(ctx context.Context) DatabaseHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
