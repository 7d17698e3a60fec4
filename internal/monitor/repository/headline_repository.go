package repository

import (
	"context"
	"time"

	"econ-mood-monitor/internal/entity"

	"gorm.io/gorm"
)

// HeadlineRepository stores classified headlines per cycle so the insight
// engine can mine recent topics without re-running classification.
type HeadlineRepository interface {
	CreateBatch(ctx context.Context, records []entity.HeadlineRecord) error
	GetSince(ctx context.Context, regionID string, since time.Time) ([]entity.HeadlineRecord, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewHeadlineRepository creates a new HeadlineRepository.
func NewHeadlineRepository(db *gorm.DB) HeadlineRepository {
	return &headlineRepository{db: db}
}

type headlineRepository struct {
	db *gorm.DB
}

func (r *headlineRepository) CreateBatch(ctx context.Context, records []entity.HeadlineRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, 100).Error
}

func (r *headlineRepository) GetSince(ctx context.Context, regionID string, since time.Time) ([]entity.HeadlineRecord, error) {
	var records []entity.HeadlineRecord
	err := r.db.WithContext(ctx).
		Where("region_id = ? AND recorded_at >= ?", regionID, since).
		Order("recorded_at DESC").
		Find(&records).Error
	return records, err
}

func (r *headlineRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Delete(&entity.HeadlineRecord{})
	return res.RowsAffected, res.Error
}
