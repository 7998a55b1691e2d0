package handlers

import (
	"context"
	"net/http"

	"mybnb/internal/caching"

	"github.com/labstack/echo/v4"
)

// Pinger is the slice of the database pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers reports liveness of the service and its backing stores.
type HealthHandlers struct {
	db    Pinger
	cache caching.CacheService
}

func NewHealthHandlers(db Pinger, cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// Health handles GET /health. Either dependency failing degrades the whole
// check to 503.
func (h *HealthHandlers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	dbStatus := "ok"
	cacheStatus := "ok"

	if err := h.db.Ping(ctx); err != nil {
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = err.Error()
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]string{
		"status":   http.StatusText(status),
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}

// Ready handles GET /health/ready: whether the service can take traffic.
// Both backing stores must answer before this reports ready.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}
	if err := h.cache.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
