package entity

import "time"

// SentimentHistory is one time-bucketed aggregate appended per region per
// collection cycle. Rows are append-only; only the retention job deletes
// buckets older than the maximum trend window.
type SentimentHistory struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RegionID       string         `gorm:"not null;index:idx_region_time" json:"region_id"`
	SentimentScore float64        `gorm:"not null" json:"sentiment_score"`
	SentimentLabel SentimentLabel `gorm:"not null" json:"sentiment_label"`
	HeadlineCount  int            `gorm:"not null" json:"headline_count"`
	RecordedAt     time.Time      `gorm:"not null;index:idx_region_time" json:"recorded_at"`
}

// TableName specifies the table name for the SentimentHistory model.
func (SentimentHistory) TableName() string {
	return "sentiment_history"
}

// HeadlineRecord is a classified headline retained per cycle so the insight
// engine can mine recent topics. Pruned together with sentiment history.
type HeadlineRecord struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RegionID       string         `gorm:"not null;index:idx_headlines_region_time" json:"region_id"`
	Title          string         `gorm:"not null" json:"title"`
	Source         string         `json:"source"`
	URL            string         `json:"url"`
	SentimentScore float64        `gorm:"not null" json:"sentiment_score"`
	SentimentLabel SentimentLabel `gorm:"not null" json:"sentiment_label"`
	RecordedAt     time.Time      `gorm:"not null;index:idx_headlines_region_time" json:"recorded_at"`
}

// TableName specifies the table name for the HeadlineRecord model.
func (HeadlineRecord) TableName() string {
	return "headlines_history"
}
