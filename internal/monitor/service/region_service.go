package service

import (
	"context"
	"errors"
	"time"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/internal/monitor/config"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/pkg/logger"
)

// ErrRegionNotFound is returned for region IDs outside the configured set.
var ErrRegionNotFound = errors.New("region not found")

// RegionService serves the read path for sentiment snapshots. It only
// touches the cache and the store; it never invokes the classifier.
type RegionService interface {
	GetRegion(ctx context.Context, regionID string) (*entity.RegionSentiment, error)
	GetAllRegions(ctx context.Context) ([]entity.RegionSentiment, error)
	RefreshCache(ctx context.Context) error
}

// NewRegionService creates a new RegionService.
func NewRegionService(cfg *config.Config, snapshotRepo repository.SnapshotRepository, cacheRepo repository.SentimentCacheRepository, log *logger.Logger) RegionService {
	return &regionService{
		cfg:          cfg,
		snapshotRepo: snapshotRepo,
		cacheRepo:    cacheRepo,
		log:          log,
	}
}

type regionService struct {
	cfg          *config.Config
	snapshotRepo repository.SnapshotRepository
	cacheRepo    repository.SentimentCacheRepository
	log          *logger.Logger
}

func (s *regionService) GetRegion(ctx context.Context, regionID string) (*entity.RegionSentiment, error) {
	region, ok := s.cfg.RegionByID(regionID)
	if !ok {
		return nil, ErrRegionNotFound
	}

	if snapshot, hit := s.cacheRepo.GetSnapshot(ctx, regionID); hit {
		return snapshot, nil
	}

	snapshot, err := s.snapshotRepo.Get(ctx, regionID)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		// Never collected yet: a well-defined pending state, not an error.
		return pendingSnapshot(region), nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheRepo.SetSnapshot(ctx, snapshot)
	return snapshot, nil
}

func (s *regionService) GetAllRegions(ctx context.Context) ([]entity.RegionSentiment, error) {
	if snapshots, hit := s.cacheRepo.GetAllSnapshots(ctx); hit {
		return snapshots, nil
	}

	stored, err := s.snapshotRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]entity.RegionSentiment, len(stored))
	for _, snapshot := range stored {
		byID[snapshot.RegionID] = snapshot
	}

	// Configured region order, with pending placeholders for regions that
	// have no snapshot yet.
	snapshots := make([]entity.RegionSentiment, 0, len(s.cfg.Regions))
	for _, region := range s.cfg.Regions {
		if snapshot, ok := byID[region.ID]; ok {
			snapshots = append(snapshots, snapshot)
			continue
		}
		snapshots = append(snapshots, *pendingSnapshot(region))
	}

	s.cacheRepo.SetAllSnapshots(ctx, snapshots)
	return snapshots, nil
}

// RefreshCache drops the read cache so subsequent reads re-read the store.
// No classification is triggered.
func (s *regionService) RefreshCache(ctx context.Context) error {
	return s.cacheRepo.Invalidate(ctx)
}

func pendingSnapshot(region config.Region) *entity.RegionSentiment {
	return &entity.RegionSentiment{
		RegionID:       region.ID,
		RegionName:     region.Name,
		SentimentScore: 50.0,
		SentimentLabel: entity.SentimentNeutral,
		TopHeadlines:   []entity.Headline{},
		LastUpdated:    time.Now().UTC(),
	}
}
