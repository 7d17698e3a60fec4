package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/internal/monitor/config"
	"econ-mood-monitor/internal/monitor/dto"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/pkg/logger"
)

const (
	maxInsights          = 5
	keywordWindow        = 24 * time.Hour
	highVolumeThreshold  = 50
	activeCycleThreshold = 20
)

// Common headline words that carry no topical signal.
var keywordStopwords = map[string]struct{}{
	"about": {}, "after": {}, "against": {}, "amid": {}, "ahead": {},
	"before": {}, "between": {}, "billion": {}, "could": {}, "million": {},
	"report": {}, "says": {}, "their": {}, "these": {}, "through": {},
	"today": {}, "under": {}, "while": {}, "would": {}, "years": {},
}

// InsightService derives short human-readable statements from a snapshot and
// its trend. Purely rule-based; each rule contributes at most one insight.
type InsightService interface {
	GenerateInsights(ctx context.Context, regionID string) (*dto.InsightsResult, error)
}

// NewInsightService creates a new InsightService.
func NewInsightService(cfg *config.Config, regionSvc RegionService, trendSvc TrendService, headlineRepo repository.HeadlineRepository, log *logger.Logger) InsightService {
	return &insightService{
		cfg:          cfg,
		regionSvc:    regionSvc,
		trendSvc:     trendSvc,
		headlineRepo: headlineRepo,
		log:          log,
	}
}

type insightService struct {
	cfg          *config.Config
	regionSvc    RegionService
	trendSvc     TrendService
	headlineRepo repository.HeadlineRepository
	log          *logger.Logger
}

func (s *insightService) GenerateInsights(ctx context.Context, regionID string) (*dto.InsightsResult, error) {
	region, ok := s.cfg.RegionByID(regionID)
	if !ok {
		return nil, ErrRegionNotFound
	}

	snapshot, err := s.regionSvc.GetRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	trend, err := s.trendSvc.ComputeTrend(ctx, regionID, 24)
	if err != nil {
		return nil, err
	}

	result := &dto.InsightsResult{RegionID: regionID, Insights: []dto.Insight{}}

	// Nothing collected yet across the look-back: the consumer shows a
	// pending placeholder, we just return an empty list.
	if snapshot.HeadlineCount == 0 && len(trend.DataPoints) == 0 {
		return result, nil
	}

	result.Insights = append(result.Insights, momentumInsight(snapshot))
	if len(trend.DataPoints) > 1 {
		result.Insights = append(result.Insights, trendInsight(trend))
	}
	result.Insights = append(result.Insights, volumeInsight(snapshot))

	if keyword, ok := s.topKeyword(ctx, regionID); ok {
		result.Insights = append(result.Insights, keywordInsight(keyword))
	}

	if region.Description != "" {
		result.Insights = append(result.Insights, dto.Insight{
			Title: "REGIONAL CONTEXT",
			Text:  region.Description,
			Color: "indigo",
			Icon:  "globe",
		})
	}

	if len(result.Insights) > maxInsights {
		result.Insights = result.Insights[:maxInsights]
	}
	return result, nil
}

func momentumInsight(snapshot *entity.RegionSentiment) dto.Insight {
	score := snapshot.SentimentScore
	switch {
	case score > 60:
		return dto.Insight{
			Title: "POSITIVE MOMENTUM",
			Text:  fmt.Sprintf("Markets show strong optimism at %.1f%%. Positive sentiment is driving confidence across %s.", score, snapshot.RegionName),
			Color: "emerald",
			Icon:  "trending-up",
		}
	case score < 40:
		return dto.Insight{
			Title: "CAUTION ADVISED",
			Text:  fmt.Sprintf("Sentiment at %.1f%% suggests market concerns. Economic headwinds may be weighing on %s.", score, snapshot.RegionName),
			Color: "rose",
			Icon:  "trending-down",
		}
	default:
		return dto.Insight{
			Title: "MARKET NEUTRALITY",
			Text:  fmt.Sprintf("Markets show balanced sentiment at %.1f%%. Mixed signals are keeping the outlook for %s stable.", score, snapshot.RegionName),
			Color: "amber",
			Icon:  "minus",
		}
	}
}

func trendInsight(trend *dto.TrendResult) dto.Insight {
	switch trend.Trend {
	case dto.TrendRising:
		return dto.Insight{
			Title: "UPWARD TREND",
			Text:  fmt.Sprintf("Sentiment has improved by %.1f points over the last 24 hours. Optimistic momentum is building.", trend.Change),
			Color: "emerald",
			Icon:  "chevron-up",
		}
	case dto.TrendFalling:
		return dto.Insight{
			Title: "DOWNWARD PRESSURE",
			Text:  fmt.Sprintf("Sentiment declined by %.1f points in the past 24 hours. Watch for further deterioration.", -trend.Change),
			Color: "rose",
			Icon:  "chevron-down",
		}
	default:
		return dto.Insight{
			Title: "STABLE OUTLOOK",
			Text:  fmt.Sprintf("Sentiment remains stable with minimal change (%+.1f points). Markets are consolidating.", trend.Change),
			Color: "blue",
			Icon:  "minus",
		}
	}
}

func volumeInsight(snapshot *entity.RegionSentiment) dto.Insight {
	count := snapshot.HeadlineCount
	switch {
	case count > highVolumeThreshold:
		return dto.Insight{
			Title: "HIGH NEWS VOLUME",
			Text:  fmt.Sprintf("Unusually high activity with %d headlines. Major economic events may be driving coverage.", count),
			Color: "purple",
			Icon:  "file-text",
		}
	case count > activeCycleThreshold:
		return dto.Insight{
			Title: "ACTIVE NEWS CYCLE",
			Text:  fmt.Sprintf("%d headlines analyzed. Normal market activity with a steady information flow.", count),
			Color: "blue",
			Icon:  "bar-chart",
		}
	default:
		return dto.Insight{
			Title: "LIGHT NEWS DAY",
			Text:  fmt.Sprintf("Only %d headlines found. Lower news volume may indicate quieter market conditions.", count),
			Color: "slate",
			Icon:  "clipboard",
		}
	}
}

func keywordInsight(keyword dto.KeywordStat) dto.Insight {
	tone := "neutral"
	if keyword.Positive > keyword.Negative {
		tone = "optimistic"
	} else if keyword.Negative > keyword.Positive {
		tone = "pessimistic"
	}
	caser := strings.ToUpper(keyword.Word[:1]) + keyword.Word[1:]
	return dto.Insight{
		Title: "TOP TOPIC",
		Text:  fmt.Sprintf("'%s' is the most discussed topic with %d mentions. Sentiment around it is %s.", caser, keyword.Count, tone),
		Color: "cyan",
		Icon:  "search",
	}
}

// topKeyword mines recent headline records for the most frequent meaningful
// word and its polarity split.
func (s *insightService) topKeyword(ctx context.Context, regionID string) (dto.KeywordStat, bool) {
	records, err := s.headlineRepo.GetSince(ctx, regionID, time.Now().UTC().Add(-keywordWindow))
	if err != nil {
		s.log.Warn("failed to load headline history for keywords",
			logger.StringField("region_id", regionID), logger.ErrorField(err))
		return dto.KeywordStat{}, false
	}
	if len(records) == 0 {
		return dto.KeywordStat{}, false
	}

	stats := map[string]*dto.KeywordStat{}
	for _, rec := range records {
		for _, word := range strings.Fields(strings.ToLower(rec.Title)) {
			word = strings.Trim(word, ".,:;!?'\"()")
			if len(word) <= 4 {
				continue
			}
			if _, stop := keywordStopwords[word]; stop {
				continue
			}
			stat, ok := stats[word]
			if !ok {
				stat = &dto.KeywordStat{Word: word}
				stats[word] = stat
			}
			stat.Count++
			switch rec.SentimentLabel {
			case entity.SentimentPositive:
				stat.Positive++
			case entity.SentimentNegative:
				stat.Negative++
			default:
				stat.Neutral++
			}
		}
	}
	if len(stats) == 0 {
		return dto.KeywordStat{}, false
	}

	all := make([]*dto.KeywordStat, 0, len(stats))
	for _, stat := range stats {
		all = append(all, stat)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Word < all[j].Word
	})
	return *all[0], true
}
