package health

import (
	"context"
	"time"

	"freight-backend/internal/cache"
	"freight-backend/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthChecker probes the record store plus the optional postgres and redis
// dependencies. The store is the only hard dependency; the optional ones
// report degraded without failing the overall status.
type HealthChecker struct {
	store store.Store
	db    *pgxpool.Pool
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Store    ComponentHealth `json:"store"`
	Database ComponentHealth `json:"database"`
	Redis    ComponentHealth `json:"redis"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(s store.Store, db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{store: s, db: db}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	storeHealth := h.checkStore()
	dbHealth := h.checkDatabase(ctx)
	redisHealth := h.checkRedis(ctx)

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	} else if dbHealth.Status == "unhealthy" || redisHealth.Status == "unhealthy" {
		status = "degraded"
	}

	return HealthStatus{
		Status:   status,
		Store:    storeHealth,
		Database: dbHealth,
		Redis:    redisHealth,
	}
}

func (h *HealthChecker) checkStore() ComponentHealth {
	start := time.Now()
	var probe []struct{}
	err := h.store.Load(store.CollectionUsers, &probe)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: elapsed}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: elapsed}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) ComponentHealth {
	if h.db == nil {
		return ComponentHealth{Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: elapsed}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: elapsed}
}

func (h *HealthChecker) checkRedis(ctx context.Context) ComponentHealth {
	client := cache.GetClient()
	if client == nil {
		return ComponentHealth{Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx).Err()
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: elapsed}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: elapsed}
}
