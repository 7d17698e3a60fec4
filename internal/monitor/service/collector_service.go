package service

import (
	"context"
	"sync"
	"time"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/internal/monitor/config"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/internal/monitor/sentiment"
	"econ-mood-monitor/pkg/logger"
	"econ-mood-monitor/pkg/telegram"
	"econ-mood-monitor/pkg/utils"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Classifier maps headline text to a sentiment label and score. Injected so
// tests can substitute a fixed-output stub for the lexicon model.
type Classifier interface {
	Classify(text string) (entity.SentimentLabel, float64)
}

// NoiseFilter decides whether a raw headline survives into classification.
type NoiseFilter interface {
	Keep(title string) bool
}

// CollectorService drives the collection cycle: fetch, filter, classify,
// aggregate, persist, for every configured region. Cycles run on a cron
// schedule and on manual trigger; at most one cycle is pending at a time and
// at most one collection is in flight per region.
type CollectorService interface {
	Start(ctx context.Context)
	TriggerCollection() bool
	RunCycle(ctx context.Context)
}

// NewCollectorService creates a new CollectorService. notifier may be nil
// when alerting is disabled.
func NewCollectorService(
	cfg *config.Config,
	feedRepo repository.FeedRepository,
	snapshotRepo repository.SnapshotRepository,
	historyRepo repository.HistoryRepository,
	headlineRepo repository.HeadlineRepository,
	cacheRepo repository.SentimentCacheRepository,
	noiseFilter NoiseFilter,
	classifier Classifier,
	notifier telegram.Notifier,
	log *logger.Logger,
) CollectorService {
	return &collectorService{
		cfg:          cfg,
		feedRepo:     feedRepo,
		snapshotRepo: snapshotRepo,
		historyRepo:  historyRepo,
		headlineRepo: headlineRepo,
		cacheRepo:    cacheRepo,
		noiseFilter:  noiseFilter,
		classifier:   classifier,
		notifier:     notifier,
		log:          log,
		trigger:      make(chan struct{}, 1),
	}
}

type collectorService struct {
	cfg          *config.Config
	feedRepo     repository.FeedRepository
	snapshotRepo repository.SnapshotRepository
	historyRepo  repository.HistoryRepository
	headlineRepo repository.HeadlineRepository
	cacheRepo    repository.SentimentCacheRepository
	noiseFilter  NoiseFilter
	classifier   Classifier
	notifier     telegram.Notifier
	log          *logger.Logger
	trigger      chan struct{}
	inFlight     sync.Map
}

// Start runs the cycle loop until the context is cancelled. The cron
// schedule and manual triggers both feed the same single-slot channel, so an
// overlapping trigger is discarded rather than stacking cycles.
func (s *collectorService) Start(ctx context.Context) {
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Collector.CronSchedule, func() {
		if !s.TriggerCollection() {
			s.log.Info("scheduled cycle skipped, a cycle is already pending or running")
		}
	}); err != nil {
		s.log.Fatal("invalid collector cron schedule",
			logger.StringField("schedule", s.cfg.Collector.CronSchedule),
			logger.ErrorField(err))
	}
	c.Start()
	defer c.Stop()

	// Populate the store on boot instead of waiting for the first tick.
	s.TriggerCollection()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("collector service stopping")
			return
		case <-s.trigger:
			s.RunCycle(ctx)
		}
	}
}

// TriggerCollection requests an out-of-schedule cycle. Returns false when a
// cycle is already pending or running; the discarded trigger is redundant
// since the pending cycle will collect the same data.
func (s *collectorService) TriggerCollection() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		s.log.Info("collection trigger discarded, cycle already pending")
		return false
	}
}

// RunCycle collects all regions concurrently, bounded by the configured
// limit. One region's failure never prevents the others from completing.
func (s *collectorService) RunCycle(ctx context.Context) {
	started := time.Now()
	s.log.Info("collection cycle starting", logger.IntField("regions", len(s.cfg.Regions)))

	var g errgroup.Group
	limit := s.cfg.Collector.MaxConcurrent
	if limit <= 0 {
		limit = 3
	}
	g.SetLimit(limit)

	for _, region := range s.cfg.Regions {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}
		g.Go(func() error {
			s.collectRegion(ctx, region)
			return nil
		})
	}
	_ = g.Wait()

	if err := s.cacheRepo.Invalidate(ctx); err != nil {
		s.log.Warn("failed to invalidate read cache after cycle", logger.ErrorField(err))
	}
	s.pruneRetention(ctx)

	s.log.Info("collection cycle finished",
		logger.Field("duration", time.Since(started)))
}

// collectRegion runs the full pipeline for one region: fetch, filter,
// classify, aggregate, persist. All failures are contained here.
func (s *collectorService) collectRegion(ctx context.Context, region config.Region) {
	if _, loaded := s.inFlight.LoadOrStore(region.ID, struct{}{}); loaded {
		s.log.Info("collection already in flight for region, skipping",
			logger.StringField("region_id", region.ID))
		return
	}
	defer s.inFlight.Delete(region.ID)

	timeout := s.cfg.Collector.RegionTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	regionCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raws, err := s.feedRepo.FetchHeadlines(regionCtx, region)
	if err != nil || len(raws) == 0 {
		// Source unavailable: the prior snapshot stays authoritative until
		// the next successful cycle.
		s.log.Warn("source unavailable, keeping previous snapshot",
			logger.StringField("region_id", region.ID),
			logger.ErrorField(err))
		return
	}

	kept := make([]entity.RawHeadline, 0, len(raws))
	for _, raw := range raws {
		if s.noiseFilter.Keep(raw.Title) {
			kept = append(kept, raw)
		}
	}
	filteredCount := len(raws) - len(kept)

	classified := make([]entity.Headline, 0, len(kept))
	for _, raw := range kept {
		label, score := s.classifier.Classify(raw.Title)
		classified = append(classified, entity.Headline{
			Title:          raw.Title,
			Source:         raw.Source,
			URL:            raw.URL,
			PublishedAt:    raw.PublishedAt,
			SentimentScore: score,
			SentimentLabel: label,
		})
	}

	snapshot := sentiment.Aggregate(region.ID, region.Name, classified, filteredCount,
		s.cfg.Collector.TopHeadlineLimit, time.Now().UTC())

	previous, _ := s.snapshotRepo.Get(regionCtx, region.ID)

	if err := s.snapshotRepo.Put(regionCtx, &snapshot); err != nil {
		s.log.Error("failed to persist snapshot, previous snapshot remains authoritative",
			logger.StringField("region_id", region.ID),
			logger.ErrorField(err))
		return
	}

	if err := s.historyRepo.Append(regionCtx, &entity.SentimentHistory{
		RegionID:       region.ID,
		SentimentScore: snapshot.SentimentScore,
		SentimentLabel: snapshot.SentimentLabel,
		HeadlineCount:  snapshot.HeadlineCount,
		RecordedAt:     snapshot.LastUpdated,
	}); err != nil {
		s.log.Error("failed to append history bucket",
			logger.StringField("region_id", region.ID),
			logger.ErrorField(err))
	}

	records := make([]entity.HeadlineRecord, 0, len(classified))
	for _, h := range classified {
		records = append(records, entity.HeadlineRecord{
			RegionID:       region.ID,
			Title:          h.Title,
			Source:         h.Source,
			URL:            h.URL,
			SentimentScore: h.SentimentScore,
			SentimentLabel: h.SentimentLabel,
			RecordedAt:     snapshot.LastUpdated,
		})
	}
	if err := s.headlineRepo.CreateBatch(regionCtx, records); err != nil {
		s.log.Error("failed to persist headline records",
			logger.StringField("region_id", region.ID),
			logger.ErrorField(err))
	}

	s.log.Info("region collected",
		logger.StringField("region_id", region.ID),
		logger.IntField("headline_count", snapshot.HeadlineCount),
		logger.IntField("filtered_count", snapshot.FilteredCount),
		logger.Float64Field("sentiment_score", snapshot.SentimentScore))

	s.maybeAlert(region, previous, &snapshot)
}

// maybeAlert sends a Telegram notification when a region's label flips or
// its score moves by at least the configured threshold.
func (s *collectorService) maybeAlert(region config.Region, previous, current *entity.RegionSentiment) {
	if s.notifier == nil || previous == nil {
		return
	}

	delta := current.SentimentScore - previous.SentimentScore
	labelFlip := previous.SentimentLabel != current.SentimentLabel
	threshold := s.cfg.Telegram.AlertThreshold
	if threshold <= 0 {
		threshold = 10
	}
	if !labelFlip && delta < threshold && delta > -threshold {
		return
	}

	msg := telegram.FormatRegionAlert(region.Name, previous.SentimentScore, current.SentimentScore,
		string(previous.SentimentLabel), string(current.SentimentLabel))
	if err := s.notifier.SendMessage(msg); err != nil {
		s.log.Error("failed to send sentiment alert",
			logger.StringField("region_id", region.ID),
			logger.ErrorField(err))
	}
}

func (s *collectorService) pruneRetention(ctx context.Context) {
	retention := s.cfg.Collector.RetentionWindow
	if retention <= 0 {
		retention = 72 * time.Hour
	}
	cutoff := time.Now().UTC().Add(-retention)

	if pruned, err := s.historyRepo.PruneOlderThan(ctx, cutoff); err != nil {
		s.log.Warn("history prune failed", logger.ErrorField(err))
	} else if pruned > 0 {
		s.log.Info("pruned history buckets", logger.Field("pruned", pruned))
	}

	if pruned, err := s.headlineRepo.PruneOlderThan(ctx, cutoff); err != nil {
		s.log.Warn("headline prune failed", logger.ErrorField(err))
	} else if pruned > 0 {
		s.log.Info("pruned headline records", logger.Field("pruned", pruned))
	}
}
