package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/internal/monitor/config"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/pkg/logger"

	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		Collector: config.Collector{
			CronSchedule:     "0 * * * *",
			MaxConcurrent:    3,
			RegionTimeout:    5 * time.Second,
			RetentionWindow:  72 * time.Hour,
			TopHeadlineLimit: 10,
		},
		Regions: []config.Region{
			{ID: "us", Name: "United States", Description: "World's largest economy.", Query: "US economy"},
			{ID: "eu", Name: "European Union", Description: "Single market of 27 states.", Query: "EU economy"},
		},
	}
}

type stubFeedRepo struct {
	mu        sync.Mutex
	headlines map[string][]entity.RawHeadline
	errs      map[string]error
	calls     map[string]int
}

func newStubFeedRepo() *stubFeedRepo {
	return &stubFeedRepo{
		headlines: map[string][]entity.RawHeadline{},
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

func (s *stubFeedRepo) FetchHeadlines(_ context.Context, region config.Region) ([]entity.RawHeadline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[region.ID]++
	if err := s.errs[region.ID]; err != nil {
		return nil, err
	}
	return s.headlines[region.ID], nil
}

type stubSnapshotRepo struct {
	mu        sync.Mutex
	snapshots map[string]entity.RegionSentiment
	putErr    error
	getAllErr error
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{snapshots: map[string]entity.RegionSentiment{}}
}

func (s *stubSnapshotRepo) Put(_ context.Context, snapshot *entity.RegionSentiment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.snapshots[snapshot.RegionID] = *snapshot
	return nil
}

func (s *stubSnapshotRepo) Get(_ context.Context, regionID string) (*entity.RegionSentiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[regionID]
	if !ok {
		return nil, repository.ErrSnapshotNotFound
	}
	return &snapshot, nil
}

func (s *stubSnapshotRepo) GetAll(_ context.Context) ([]entity.RegionSentiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	all := make([]entity.RegionSentiment, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		all = append(all, snapshot)
	}
	return all, nil
}

type stubHistoryRepo struct {
	mu       sync.Mutex
	buckets  []entity.SentimentHistory
	getErr   error
	pruned   int64
	pruneErr error
}

func (s *stubHistoryRepo) Append(_ context.Context, bucket *entity.SentimentHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = append(s.buckets, *bucket)
	return nil
}

func (s *stubHistoryRepo) GetSince(_ context.Context, regionID string, since time.Time) ([]entity.SentimentHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	var out []entity.SentimentHistory
	for _, b := range s.buckets {
		if b.RegionID == regionID && !b.RecordedAt.Before(since) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubHistoryRepo) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pruneErr != nil {
		return 0, s.pruneErr
	}
	kept := s.buckets[:0]
	for _, b := range s.buckets {
		if b.RecordedAt.Before(cutoff) {
			s.pruned++
			continue
		}
		kept = append(kept, b)
	}
	s.buckets = kept
	return s.pruned, nil
}

type stubHeadlineRepo struct {
	mu      sync.Mutex
	records []entity.HeadlineRecord
	getErr  error
}

func (s *stubHeadlineRepo) CreateBatch(_ context.Context, records []entity.HeadlineRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *stubHeadlineRepo) GetSince(_ context.Context, regionID string, since time.Time) ([]entity.HeadlineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	var out []entity.HeadlineRecord
	for _, rec := range s.records {
		if rec.RegionID == regionID && !rec.RecordedAt.Before(since) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubHeadlineRepo) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pruned int64
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.RecordedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return pruned, nil
}

type stubCacheRepo struct {
	mu          sync.Mutex
	snapshots   map[string]entity.RegionSentiment
	all         []entity.RegionSentiment
	hasAll      bool
	invalidates int
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{snapshots: map[string]entity.RegionSentiment{}}
}

func (s *stubCacheRepo) GetSnapshot(_ context.Context, regionID string) (*entity.RegionSentiment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[regionID]
	if !ok {
		return nil, false
	}
	return &snapshot, true
}

func (s *stubCacheRepo) SetSnapshot(_ context.Context, snapshot *entity.RegionSentiment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.RegionID] = *snapshot
}

func (s *stubCacheRepo) GetAllSnapshots(_ context.Context) ([]entity.RegionSentiment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasAll {
		return nil, false
	}
	return s.all, true
}

func (s *stubCacheRepo) SetAllSnapshots(_ context.Context, snapshots []entity.RegionSentiment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = snapshots
	s.hasAll = true
}

func (s *stubCacheRepo) Invalidate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = map[string]entity.RegionSentiment{}
	s.all = nil
	s.hasAll = false
	s.invalidates++
	return nil
}

func (s *stubCacheRepo) Ping(_ context.Context) error { return nil }

// keywordClassifier labels by simple substring match so tests can steer the
// pipeline without depending on the lexicon.
type keywordClassifier struct{}

func (keywordClassifier) Classify(text string) (entity.SentimentLabel, float64) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "surge"):
		return entity.SentimentPositive, 0.8
	case strings.Contains(lower, "crash"):
		return entity.SentimentNegative, -0.8
	default:
		return entity.SentimentNeutral, 0
	}
}

type keepAllFilter struct{}

func (keepAllFilter) Keep(title string) bool { return strings.TrimSpace(title) != "" }

// dropNoiseFilter drops any title containing "podcast".
type dropNoiseFilter struct{}

func (dropNoiseFilter) Keep(title string) bool {
	return !strings.Contains(strings.ToLower(title), "podcast")
}
