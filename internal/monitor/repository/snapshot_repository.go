package repository

import (
	"context"
	"errors"

	"econ-mood-monitor/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSnapshotNotFound is returned when a region has never been collected.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists the live per-region sentiment snapshot.
type SnapshotRepository interface {
	Put(ctx context.Context, snapshot *entity.RegionSentiment) error
	Get(ctx context.Context, regionID string) (*entity.RegionSentiment, error)
	GetAll(ctx context.Context) ([]entity.RegionSentiment, error)
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

type snapshotRepository struct {
	db *gorm.DB
}

// Put replaces the region's snapshot wholesale. The single-row upsert keeps
// the replacement atomic: readers see either the old row or the new one,
// never a mix.
func (r *snapshotRepository) Put(ctx context.Context, snapshot *entity.RegionSentiment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region_id"}},
		UpdateAll: true,
	}).Create(snapshot).Error
}

func (r *snapshotRepository) Get(ctx context.Context, regionID string) (*entity.RegionSentiment, error) {
	var snapshot entity.RegionSentiment
	err := r.db.WithContext(ctx).Where("region_id = ?", regionID).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) GetAll(ctx context.Context) ([]entity.RegionSentiment, error) {
	var snapshots []entity.RegionSentiment
	err := r.db.WithContext(ctx).Order("region_id ASC").Find(&snapshots).Error
	return snapshots, err
}
