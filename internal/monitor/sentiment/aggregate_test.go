package sentiment

import (
	"testing"
	"time"

	"econ-mood-monitor/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggregateNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func headlinesWithLabels(labels ...entity.SentimentLabel) []entity.Headline {
	headlines := make([]entity.Headline, len(labels))
	for i, label := range labels {
		published := aggregateNow.Add(-time.Duration(i) * time.Minute)
		headlines[i] = entity.Headline{
			Title:          "headline",
			Source:         "Test Wire",
			URL:            "https://example.com",
			PublishedAt:    &published,
			SentimentLabel: label,
		}
	}
	return headlines
}

func TestAggregateCounts(t *testing.T) {
	headlines := headlinesWithLabels(
		entity.SentimentPositive, entity.SentimentPositive, entity.SentimentPositive,
		entity.SentimentPositive, entity.SentimentPositive, entity.SentimentPositive,
		entity.SentimentNegative, entity.SentimentNegative,
		entity.SentimentNeutral, entity.SentimentNeutral,
	)

	snapshot := Aggregate("us", "United States", headlines, 3, 10, aggregateNow)

	assert.Equal(t, 6, snapshot.BullCount)
	assert.Equal(t, 2, snapshot.BearCount)
	assert.Equal(t, 2, snapshot.NeutralCount)
	assert.Equal(t, 10, snapshot.HeadlineCount)
	assert.Equal(t, 3, snapshot.FilteredCount)
	assert.Equal(t, 75.0, snapshot.SentimentScore)
	assert.Equal(t, entity.SentimentPositive, snapshot.SentimentLabel)
}

func TestAggregateCountInvariant(t *testing.T) {
	tests := []struct {
		name   string
		labels []entity.SentimentLabel
	}{
		{"mixed", []entity.SentimentLabel{entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral}},
		{"all positive", []entity.SentimentLabel{entity.SentimentPositive, entity.SentimentPositive}},
		{"all neutral", []entity.SentimentLabel{entity.SentimentNeutral, entity.SentimentNeutral, entity.SentimentNeutral}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := Aggregate("eu", "European Union", headlinesWithLabels(tt.labels...), 0, 10, aggregateNow)
			assert.Equal(t, snapshot.HeadlineCount, snapshot.BullCount+snapshot.BearCount+snapshot.NeutralCount)
			assert.GreaterOrEqual(t, snapshot.SentimentScore, 0.0)
			assert.LessOrEqual(t, snapshot.SentimentScore, 100.0)
		})
	}
}

// When no signal headlines exist at all, the score must be exactly 50 with a
// neutral label: an explicit branch, not a division fallback.
func TestAggregateZeroSignal(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		snapshot := Aggregate("eu", "European Union", nil, 0, 10, aggregateNow)
		assert.Equal(t, 50.0, snapshot.SentimentScore)
		assert.Equal(t, entity.SentimentNeutral, snapshot.SentimentLabel)
	})

	t.Run("all neutral", func(t *testing.T) {
		snapshot := Aggregate("eu", "European Union",
			headlinesWithLabels(entity.SentimentNeutral, entity.SentimentNeutral), 0, 10, aggregateNow)
		assert.Equal(t, 50.0, snapshot.SentimentScore)
		assert.Equal(t, entity.SentimentNeutral, snapshot.SentimentLabel)
		assert.Equal(t, 2, snapshot.NeutralCount)
	})
}

// Running the fold twice on the same input yields identical output: it is a
// pure function with no hidden state.
func TestAggregateIdempotent(t *testing.T) {
	headlines := headlinesWithLabels(
		entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral,
		entity.SentimentPositive,
	)

	first := Aggregate("saudi", "Saudi Arabia", headlines, 2, 10, aggregateNow)
	second := Aggregate("saudi", "Saudi Arabia", headlines, 2, 10, aggregateNow)

	assert.Equal(t, first, second)
}

func TestLabelForScoreMonotonic(t *testing.T) {
	rank := func(label entity.SentimentLabel) int {
		switch label {
		case entity.SentimentNegative:
			return 0
		case entity.SentimentNeutral:
			return 1
		default:
			return 2
		}
	}

	prev := rank(LabelForScore(0))
	for score := 0.5; score <= 100; score += 0.5 {
		current := rank(LabelForScore(score))
		assert.GreaterOrEqual(t, current, prev, "label rank regressed at score %.1f", score)
		prev = current
	}

	assert.Equal(t, entity.SentimentNegative, LabelForScore(0))
	assert.Equal(t, entity.SentimentNeutral, LabelForScore(50))
	assert.Equal(t, entity.SentimentPositive, LabelForScore(100))
}

func TestAggregateTopHeadlines(t *testing.T) {
	older := aggregateNow.Add(-2 * time.Hour)
	newer := aggregateNow.Add(-10 * time.Minute)

	headlines := []entity.Headline{
		{Title: "neutral newer", PublishedAt: &newer, SentimentLabel: entity.SentimentNeutral},
		{Title: "signal older", PublishedAt: &older, SentimentLabel: entity.SentimentNegative},
		{Title: "signal newer", PublishedAt: &newer, SentimentLabel: entity.SentimentPositive},
		{Title: "neutral no date", SentimentLabel: entity.SentimentNeutral},
	}

	snapshot := Aggregate("us", "United States", headlines, 0, 3, aggregateNow)

	require.Len(t, snapshot.TopHeadlines, 3)
	assert.Equal(t, "signal newer", snapshot.TopHeadlines[0].Title)
	assert.Equal(t, "signal older", snapshot.TopHeadlines[1].Title)
	assert.Equal(t, "neutral newer", snapshot.TopHeadlines[2].Title)
}

func TestAggregateTopHeadlinesTruncation(t *testing.T) {
	headlines := headlinesWithLabels(
		entity.SentimentPositive, entity.SentimentPositive, entity.SentimentPositive,
		entity.SentimentPositive, entity.SentimentPositive,
	)

	snapshot := Aggregate("us", "United States", headlines, 0, 2, aggregateNow)
	assert.Len(t, snapshot.TopHeadlines, 2)
	assert.Equal(t, 5, snapshot.HeadlineCount)
}
