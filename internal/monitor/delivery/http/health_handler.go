package http

import (
	"net/http"

	"econ-mood-monitor/internal/monitor/dto"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and dependency health endpoints.
type HealthHandler struct {
	db        *gorm.DB
	cacheRepo repository.SentimentCacheRepository
	regions   int
	logger    *logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, cacheRepo repository.SentimentCacheRepository, regions int, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, cacheRepo: cacheRepo, regions: regions, logger: logger}
}

// RegisterRoutes registers the basic liveness route on the Echo instance and
// the detailed health route on the API group.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo, api *echo.Group) {
	e.GET("/health", h.Liveness)
	api.GET("/health", h.Detail)
}

// Liveness is the basic process-up check.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Detail reports database and cache connectivity.
func (h *HealthHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	result := dto.HealthResult{
		Status:   "healthy",
		Database: "healthy",
		Cache:    "healthy",
		Regions:  h.regions,
	}

	if sqlDB, err := h.db.DB(); err != nil {
		result.Database = "error: " + err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "error: " + err.Error()
	}

	if err := h.cacheRepo.Ping(ctx); err != nil {
		result.Cache = "error: " + err.Error()
	}

	if result.Database != "healthy" || result.Cache != "healthy" {
		result.Status = "degraded"
	}
	return respondOK(c, result)
}
