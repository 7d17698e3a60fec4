package dto

import (
	"time"
)

// APIResponse is the envelope returned by every endpoint. Callers must check
// Success before trusting Data.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// TrendDataPoint is one history bucket in a trend response.
type TrendDataPoint struct {
	Score         float64   `json:"score"`
	Label         string    `json:"label"`
	HeadlineCount int       `json:"headline_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// TrendResult is the computed trend for one region over a window.
type TrendResult struct {
	RegionID   string           `json:"region_id"`
	Trend      string           `json:"trend"` // rising, falling, stable
	Change     float64          `json:"change"`
	DataPoints []TrendDataPoint `json:"data_points"`
}

// Insight is one rule-derived statement about a region's sentiment.
type Insight struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// InsightsResult is the insight list for one region.
type InsightsResult struct {
	RegionID string    `json:"region_id"`
	Insights []Insight `json:"insights"`
}

// CollectResult reports how a manual collection trigger was handled.
type CollectResult struct {
	Queued  bool   `json:"queued"`
	Message string `json:"message"`
}

// HealthResult is the detailed health check payload.
type HealthResult struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Regions  int    `json:"regions"`
}

// Trend directions.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// KeywordStat aggregates how often a word appeared in recent headlines and
// with which polarity.
type KeywordStat struct {
	Word     string `json:"word"`
	Count    int    `json:"count"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}
