// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/TTPhuongNam/user-management-app/internal/core"
)

// Handler exposes operational stats to admins: connection pool health for
// the store and redis, plus process runtime numbers.
type Handler struct {
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	dbPing     func(ctx context.Context) error
	redisPing  func(ctx context.Context) error
}

type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	DBPing     func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		dbPing:     cfg.DBPing,
		redisPing:  cfg.RedisPing,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
	})
}

type SystemStats struct {
	DatabaseHealthy bool `json:"database_healthy"`
	RedisHealthy    bool `json:"redis_healthy"`
	Goroutines      int  `json:"goroutines"`
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbHealthy := true
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			dbHealthy = false
		}
	}

	redisHealthy := true
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			redisHealthy = false
		}
	}

	core.OK(w, SystemStats{
		DatabaseHealthy: dbHealthy,
		RedisHealthy:    redisHealthy,
		Goroutines:      runtime.NumGoroutine(),
	})
}

type DatabaseStats struct {
	MaxOpenConnections int   `json:"max_open_connections"`
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"wait_count"`
	WaitDurationMs     int64 `json:"wait_duration_ms"`
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	if h.dbStats == nil {
		core.NotFound(w, "database stats")
		return
	}

	stats := h.dbStats()
	core.OK(w, DatabaseStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDurationMs:     stats.WaitDuration.Milliseconds(),
	})
}

type RedisStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	if h.redisStats == nil {
		core.NotFound(w, "redis stats")
		return
	}

	stats := h.redisStats()
	core.OK(w, RedisStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	})
}

type RuntimeStats struct {
	Goroutines   int    `json:"goroutines"`
	HeapAllocMB  uint64 `json:"heap_alloc_mb"`
	HeapSysMB    uint64 `json:"heap_sys_mb"`
	NumGC        uint32 `json:"num_gc"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	TotalAllocMB uint64 `json:"total_alloc_mb"`
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	core.OK(w, RuntimeStats{
		Goroutines:   runtime.NumGoroutine(),
		HeapAllocMB:  mem.HeapAlloc / 1024 / 1024,
		HeapSysMB:    mem.HeapSys / 1024 / 1024,
		NumGC:        mem.NumGC,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		TotalAllocMB: mem.TotalAlloc / 1024 / 1024,
	})
}
