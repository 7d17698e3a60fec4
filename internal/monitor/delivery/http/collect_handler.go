package http

import (
	"net/http"

	"econ-mood-monitor/internal/monitor/dto"
	"econ-mood-monitor/internal/monitor/service"
	"econ-mood-monitor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CollectHandler handles the collection trigger and cache refresh endpoints.
type CollectHandler struct {
	collectorSvc service.CollectorService
	regionSvc    service.RegionService
	logger       *logger.Logger
}

// NewCollectHandler creates a new CollectHandler.
func NewCollectHandler(collectorSvc service.CollectorService, regionSvc service.RegionService, logger *logger.Logger) *CollectHandler {
	return &CollectHandler{
		collectorSvc: collectorSvc,
		regionSvc:    regionSvc,
		logger:       logger,
	}
}

// RegisterRoutes registers the collect/refresh routes to the Echo group.
func (h *CollectHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/collect", h.TriggerCollection)
	g.POST("/refresh", h.RefreshCache)
}

// TriggerCollection enqueues an out-of-schedule collection cycle and returns
// immediately. A trigger arriving while a cycle is pending is discarded;
// repeating the request is safe.
func (h *CollectHandler) TriggerCollection(c echo.Context) error {
	queued := h.collectorSvc.TriggerCollection()

	result := dto.CollectResult{Queued: queued}
	if queued {
		result.Message = "collection cycle queued"
	} else {
		result.Message = "collection cycle already pending, trigger discarded"
	}
	return respondOK(c, result)
}

// RefreshCache drops the read-side cache so the next reads hit the store.
// Classification is never re-run.
func (h *CollectHandler) RefreshCache(c echo.Context) error {
	if err := h.regionSvc.RefreshCache(c.Request().Context()); err != nil {
		h.logger.Error("failed to refresh cache", logger.ErrorField(err))
		return respondError(c, http.StatusInternalServerError, "failed to refresh cache")
	}
	return respondOK(c, map[string]string{"message": "cache cleared"})
}
