package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"econ-mood-monitor/internal/monitor/dto"
	"econ-mood-monitor/internal/monitor/service"
	"econ-mood-monitor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RegionHandler handles the sentiment read endpoints.
type RegionHandler struct {
	regionSvc  service.RegionService
	trendSvc   service.TrendService
	insightSvc service.InsightService
	logger     *logger.Logger
}

// NewRegionHandler creates a new RegionHandler.
func NewRegionHandler(regionSvc service.RegionService, trendSvc service.TrendService, insightSvc service.InsightService, logger *logger.Logger) *RegionHandler {
	return &RegionHandler{
		regionSvc:  regionSvc,
		trendSvc:   trendSvc,
		insightSvc: insightSvc,
		logger:     logger,
	}
}

// RegisterRoutes registers the region routes to the Echo group.
func (h *RegionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllRegions)
	g.GET("/:id", h.GetRegion)
	g.GET("/:id/trend", h.GetTrend)
	g.GET("/:id/insights", h.GetInsights)
}

// GetAllRegions returns the current snapshot for every configured region.
func (h *RegionHandler) GetAllRegions(c echo.Context) error {
	snapshots, err := h.regionSvc.GetAllRegions(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to get all regions", logger.ErrorField(err))
		return respondError(c, http.StatusInternalServerError, "failed to load region snapshots")
	}
	return respondOK(c, snapshots)
}

// GetRegion returns the current snapshot for one region.
func (h *RegionHandler) GetRegion(c echo.Context) error {
	regionID := c.Param("id")

	snapshot, err := h.regionSvc.GetRegion(c.Request().Context(), regionID)
	if errors.Is(err, service.ErrRegionNotFound) {
		return respondError(c, http.StatusNotFound, "region not found")
	}
	if err != nil {
		h.logger.Error("failed to get region", logger.StringField("region_id", regionID), logger.ErrorField(err))
		return respondError(c, http.StatusInternalServerError, "failed to load region snapshot")
	}
	return respondOK(c, snapshot)
}

// GetTrend returns the bucketed history and computed direction for a region
// over the requested window (default 24h).
func (h *RegionHandler) GetTrend(c echo.Context) error {
	regionID := c.Param("id")

	hours := 24
	if raw := c.QueryParam("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return respondError(c, http.StatusBadRequest, "invalid hours parameter")
		}
		hours = parsed
	}

	if _, err := h.regionSvc.GetRegion(c.Request().Context(), regionID); errors.Is(err, service.ErrRegionNotFound) {
		return respondError(c, http.StatusNotFound, "region not found")
	}

	trend, err := h.trendSvc.ComputeTrend(c.Request().Context(), regionID, hours)
	if err != nil {
		h.logger.Error("failed to compute trend", logger.StringField("region_id", regionID), logger.ErrorField(err))
		return respondError(c, http.StatusInternalServerError, "failed to compute trend")
	}
	return respondOK(c, trend)
}

// GetInsights returns the rule-derived insight list for a region.
func (h *RegionHandler) GetInsights(c echo.Context) error {
	regionID := c.Param("id")

	insights, err := h.insightSvc.GenerateInsights(c.Request().Context(), regionID)
	if errors.Is(err, service.ErrRegionNotFound) {
		return respondError(c, http.StatusNotFound, "region not found")
	}
	if err != nil {
		h.logger.Error("failed to generate insights", logger.StringField("region_id", regionID), logger.ErrorField(err))
		return respondError(c, http.StatusInternalServerError, "failed to generate insights")
	}
	return respondOK(c, insights)
}

func respondOK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondError(c echo.Context, code int, msg string) error {
	return c.JSON(code, dto.APIResponse{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().UTC(),
	})
}
