package repository

import (
	"context"
	"time"

	"econ-mood-monitor/internal/entity"

	"gorm.io/gorm"
)

// HistoryRepository owns the append-only sentiment history. Nothing else
// creates or prunes buckets.
type HistoryRepository interface {
	Append(ctx context.Context, bucket *entity.SentimentHistory) error
	GetSince(ctx context.Context, regionID string, since time.Time) ([]entity.SentimentHistory, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

type historyRepository struct {
	db *gorm.DB
}

func (r *historyRepository) Append(ctx context.Context, bucket *entity.SentimentHistory) error {
	return r.db.WithContext(ctx).Create(bucket).Error
}

// GetSince returns buckets recorded at or after the boundary, in
// chronological order.
func (r *historyRepository) GetSince(ctx context.Context, regionID string, since time.Time) ([]entity.SentimentHistory, error) {
	var buckets []entity.SentimentHistory
	err := r.db.WithContext(ctx).
		Where("region_id = ? AND recorded_at >= ?", regionID, since).
		Order("recorded_at ASC").
		Find(&buckets).Error
	return buckets, err
}

func (r *historyRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Delete(&entity.SentimentHistory{})
	return res.RowsAffected, res.Error
}
