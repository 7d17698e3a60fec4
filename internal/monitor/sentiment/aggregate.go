package sentiment

import (
	"math"
	"sort"
	"time"

	"econ-mood-monitor/internal/entity"
)

// Aggregate folds a region's classified headlines into a snapshot. It is a
// pure function: no persistence, no clock reads, same inputs give
// byte-identical output.
//
// The optimism ratio is bull/(bull+bear)*100. When no signal headlines exist
// at all (empty or all-neutral input) the score is defined as 50 with a
// neutral label; that branch is explicit, not a division fallback.
func Aggregate(regionID, regionName string, headlines []entity.Headline, filteredCount, topLimit int, now time.Time) entity.RegionSentiment {
	var bull, bear, neutral int
	for _, h := range headlines {
		switch h.SentimentLabel {
		case entity.SentimentPositive:
			bull++
		case entity.SentimentNegative:
			bear++
		default:
			neutral++
		}
	}

	score := 50.0
	if bull+bear > 0 {
		score = round1(float64(bull) / float64(bull+bear) * 100)
	}

	return entity.RegionSentiment{
		RegionID:       regionID,
		RegionName:     regionName,
		SentimentScore: score,
		SentimentLabel: LabelForScore(score),
		HeadlineCount:  len(headlines),
		BullCount:      bull,
		BearCount:      bear,
		NeutralCount:   neutral,
		FilteredCount:  filteredCount,
		TopHeadlines:   topHeadlines(headlines, topLimit),
		LastUpdated:    now,
	}
}

// LabelForScore maps an optimism ratio to the aggregate sentiment label.
func LabelForScore(score float64) entity.SentimentLabel {
	switch {
	case score > BullLabelThreshold:
		return entity.SentimentPositive
	case score < BearLabelThreshold:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

// topHeadlines ranks signal-bearing headlines ahead of neutral ones, most
// recent first within a tier, truncated to limit.
func topHeadlines(headlines []entity.Headline, limit int) []entity.Headline {
	ranked := make([]entity.Headline, len(headlines))
	copy(ranked, headlines)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := isSignal(ranked[i]), isSignal(ranked[j])
		if si != sj {
			return si
		}
		ti, tj := ranked[i].PublishedAt, ranked[j].PublishedAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func isSignal(h entity.Headline) bool {
	return h.SentimentLabel == entity.SentimentPositive || h.SentimentLabel == entity.SentimentNegative
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
