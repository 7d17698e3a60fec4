package service

import (
	"context"
	"testing"
	"time"

	"econ-mood-monitor/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insightFixture struct {
	snapshotRepo *stubSnapshotRepo
	historyRepo  *stubHistoryRepo
	headlineRepo *stubHeadlineRepo
	svc          InsightService
}

func newInsightFixture(t *testing.T) *insightFixture {
	t.Helper()
	cfg := testConfig()
	f := &insightFixture{
		snapshotRepo: newStubSnapshotRepo(),
		historyRepo:  &stubHistoryRepo{},
		headlineRepo: &stubHeadlineRepo{},
	}
	log := testLogger(t)
	regionSvc := NewRegionService(cfg, f.snapshotRepo, newStubCacheRepo(), log)
	trendSvc := NewTrendService(f.historyRepo, log)
	f.svc = NewInsightService(cfg, regionSvc, trendSvc, f.headlineRepo, log)
	return f
}

func TestGenerateInsightsUnknownRegion(t *testing.T) {
	f := newInsightFixture(t)
	_, err := f.svc.GenerateInsights(context.Background(), "atlantis")
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

// With no snapshot and no history the result is an empty list, not an error.
func TestGenerateInsightsNoData(t *testing.T) {
	f := newInsightFixture(t)
	result, err := f.svc.GenerateInsights(context.Background(), "us")
	require.NoError(t, err)
	assert.Equal(t, "us", result.RegionID)
	assert.Empty(t, result.Insights)
}

func TestGenerateInsightsOptimistic(t *testing.T) {
	f := newInsightFixture(t)
	snapshot := storedSnapshot("us", "United States", 72.0)
	snapshot.HeadlineCount = 30
	f.snapshotRepo.snapshots["us"] = snapshot
	f.historyRepo.buckets = []entity.SentimentHistory{
		historyAt("us", 50, 6*time.Hour),
		historyAt("us", 60, 4*time.Hour),
		historyAt("us", 65, 2*time.Hour),
		historyAt("us", 72, time.Hour),
	}

	result, err := f.svc.GenerateInsights(context.Background(), "us")
	require.NoError(t, err)
	require.NotEmpty(t, result.Insights)
	assert.LessOrEqual(t, len(result.Insights), 5)

	assert.Equal(t, "POSITIVE MOMENTUM", result.Insights[0].Title)
	assert.Equal(t, "UPWARD TREND", result.Insights[1].Title)
	assert.Equal(t, "ACTIVE NEWS CYCLE", result.Insights[2].Title)
}

func TestGenerateInsightsPessimistic(t *testing.T) {
	f := newInsightFixture(t)
	snapshot := storedSnapshot("eu", "European Union", 31.0)
	snapshot.SentimentLabel = entity.SentimentNegative
	snapshot.HeadlineCount = 8
	f.snapshotRepo.snapshots["eu"] = snapshot

	result, err := f.svc.GenerateInsights(context.Background(), "eu")
	require.NoError(t, err)
	require.NotEmpty(t, result.Insights)

	assert.Equal(t, "CAUTION ADVISED", result.Insights[0].Title)
	// Single data point in history, so no trend insight is emitted.
	assert.Equal(t, "LIGHT NEWS DAY", result.Insights[1].Title)
}

func TestGenerateInsightsTopTopic(t *testing.T) {
	f := newInsightFixture(t)
	snapshot := storedSnapshot("us", "United States", 55.0)
	snapshot.HeadlineCount = 3
	f.snapshotRepo.snapshots["us"] = snapshot
	now := time.Now().UTC()
	f.headlineRepo.records = []entity.HeadlineRecord{
		{RegionID: "us", Title: "Inflation pressures mount", SentimentLabel: entity.SentimentNegative, RecordedAt: now},
		{RegionID: "us", Title: "Inflation report due Friday", SentimentLabel: entity.SentimentNeutral, RecordedAt: now},
		{RegionID: "us", Title: "Inflation eases slightly", SentimentLabel: entity.SentimentNegative, RecordedAt: now},
	}

	result, err := f.svc.GenerateInsights(context.Background(), "us")
	require.NoError(t, err)

	var topTopic string
	for _, in := range result.Insights {
		if in.Title == "TOP TOPIC" {
			topTopic = in.Text
		}
	}
	require.NotEmpty(t, topTopic, "expected a TOP TOPIC insight")
	assert.Contains(t, topTopic, "Inflation")
	assert.Contains(t, topTopic, "3 mentions")
	assert.Contains(t, topTopic, "pessimistic")
}

func TestGenerateInsightsCap(t *testing.T) {
	f := newInsightFixture(t)
	snapshot := storedSnapshot("us", "United States", 72.0)
	snapshot.HeadlineCount = 60
	f.snapshotRepo.snapshots["us"] = snapshot
	f.historyRepo.buckets = []entity.SentimentHistory{
		historyAt("us", 40, 6*time.Hour),
		historyAt("us", 55, 4*time.Hour),
		historyAt("us", 65, 2*time.Hour),
		historyAt("us", 72, time.Hour),
	}
	now := time.Now().UTC()
	f.headlineRepo.records = []entity.HeadlineRecord{
		{RegionID: "us", Title: "Earnings season kicks off strongly", SentimentLabel: entity.SentimentPositive, RecordedAt: now},
		{RegionID: "us", Title: "Earnings beat across the board", SentimentLabel: entity.SentimentPositive, RecordedAt: now},
	}

	result, err := f.svc.GenerateInsights(context.Background(), "us")
	require.NoError(t, err)

	// Momentum, trend, volume, top topic and regional context all fire; the
	// list is capped at five.
	assert.Len(t, result.Insights, 5)
	assert.Equal(t, "HIGH NEWS VOLUME", result.Insights[2].Title)
}
