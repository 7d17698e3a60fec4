package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/pkg/common"
	"econ-mood-monitor/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// SentimentCacheRepository is the Redis read-side cache in front of the
// snapshot store. Entries carry a TTL; Invalidate drops everything so the
// next read goes back to the store. The cache never triggers classification.
type SentimentCacheRepository interface {
	GetSnapshot(ctx context.Context, regionID string) (*entity.RegionSentiment, bool)
	SetSnapshot(ctx context.Context, snapshot *entity.RegionSentiment)
	GetAllSnapshots(ctx context.Context) ([]entity.RegionSentiment, bool)
	SetAllSnapshots(ctx context.Context, snapshots []entity.RegionSentiment)
	Invalidate(ctx context.Context) error
	Ping(ctx context.Context) error
}

// NewSentimentCacheRepository creates a Redis-backed cache with the given TTL.
func NewSentimentCacheRepository(client *redis.Client, ttl time.Duration, log *logger.Logger) SentimentCacheRepository {
	if ttl <= 0 {
		ttl = common.DefaultCacheTTL
	}
	return &sentimentCacheRepository{client: client, ttl: ttl, log: log}
}

type sentimentCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func (r *sentimentCacheRepository) GetSnapshot(ctx context.Context, regionID string) (*entity.RegionSentiment, bool) {
	raw, err := r.client.Get(ctx, common.CacheKeySnapshotPrefix+regionID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache read failed", logger.StringField("region_id", regionID), logger.ErrorField(err))
		}
		return nil, false
	}
	var snapshot entity.RegionSentiment
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		r.log.Warn("cache entry corrupt, ignoring", logger.StringField("region_id", regionID), logger.ErrorField(err))
		return nil, false
	}
	return &snapshot, true
}

// SetSnapshot caches a snapshot. Cache write failures are logged and
// swallowed; the store remains the source of truth.
func (r *sentimentCacheRepository) SetSnapshot(ctx context.Context, snapshot *entity.RegionSentiment) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		r.log.Warn("failed to marshal snapshot for cache", logger.ErrorField(err))
		return
	}
	if err := r.client.Set(ctx, common.CacheKeySnapshotPrefix+snapshot.RegionID, raw, r.ttl).Err(); err != nil {
		r.log.Warn("cache write failed", logger.StringField("region_id", snapshot.RegionID), logger.ErrorField(err))
	}
}

func (r *sentimentCacheRepository) GetAllSnapshots(ctx context.Context) ([]entity.RegionSentiment, bool) {
	raw, err := r.client.Get(ctx, common.CacheKeyAllSnapshots).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache read failed", logger.ErrorField(err))
		}
		return nil, false
	}
	var snapshots []entity.RegionSentiment
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		r.log.Warn("cache entry corrupt, ignoring", logger.ErrorField(err))
		return nil, false
	}
	return snapshots, true
}

func (r *sentimentCacheRepository) SetAllSnapshots(ctx context.Context, snapshots []entity.RegionSentiment) {
	raw, err := json.Marshal(snapshots)
	if err != nil {
		r.log.Warn("failed to marshal snapshots for cache", logger.ErrorField(err))
		return
	}
	if err := r.client.Set(ctx, common.CacheKeyAllSnapshots, raw, r.ttl).Err(); err != nil {
		r.log.Warn("cache write failed", logger.ErrorField(err))
	}
}

// Invalidate drops all cached sentiment entries.
func (r *sentimentCacheRepository) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, common.CacheKeySnapshotPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	keys = append(keys, common.CacheKeyAllSnapshots)
	return r.client.Del(ctx, keys...).Err()
}

func (r *sentimentCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
