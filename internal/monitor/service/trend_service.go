package service

import (
	"context"
	"math"
	"time"

	"econ-mood-monitor/internal/monitor/dto"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/pkg/logger"
)

// trendDeadZone is the percentage-point band around zero change inside which
// the direction stays stable, so near-zero noise does not flap between
// rising and falling.
const trendDeadZone = 2.0

// TrendService computes sentiment direction and magnitude of change over a
// requested window from the stored history.
type TrendService interface {
	ComputeTrend(ctx context.Context, regionID string, windowHours int) (*dto.TrendResult, error)
}

// NewTrendService creates a new TrendService.
func NewTrendService(historyRepo repository.HistoryRepository, log *logger.Logger) TrendService {
	return &trendService{historyRepo: historyRepo, log: log}
}

type trendService struct {
	historyRepo repository.HistoryRepository
	log         *logger.Logger
}

// ComputeTrend compares the mean score of the earliest third of buckets in
// the window against the mean of the latest third. With fewer than two
// buckets the trend is stable with zero change.
func (s *trendService) ComputeTrend(ctx context.Context, regionID string, windowHours int) (*dto.TrendResult, error) {
	if windowHours <= 0 {
		windowHours = 24
	}
	since := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)

	buckets, err := s.historyRepo.GetSince(ctx, regionID, since)
	if err != nil {
		return nil, err
	}

	points := make([]dto.TrendDataPoint, len(buckets))
	for i, b := range buckets {
		points[i] = dto.TrendDataPoint{
			Score:         b.SentimentScore,
			Label:         string(b.SentimentLabel),
			HeadlineCount: b.HeadlineCount,
			Timestamp:     b.RecordedAt,
		}
	}

	result := &dto.TrendResult{
		RegionID:   regionID,
		Trend:      dto.TrendStable,
		Change:     0,
		DataPoints: points,
	}

	if len(points) < 2 {
		return result, nil
	}

	third := len(points) / 3
	if third == 0 {
		third = 1
	}
	earliest := meanScore(points[:third])
	latest := meanScore(points[len(points)-third:])

	change := math.Round((latest-earliest)*10) / 10
	result.Change = change
	switch {
	case change > trendDeadZone:
		result.Trend = dto.TrendRising
	case change < -trendDeadZone:
		result.Trend = dto.TrendFalling
	}

	return result, nil
}

func meanScore(points []dto.TrendDataPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	return sum / float64(len(points))
}
