package entity

import (
	"time"

	"gorm.io/datatypes"
)

// RegionSentiment is the live sentiment snapshot for one region. There is at
// most one row per region; each successful collection cycle replaces the row
// wholesale via an upsert, so readers never see a half-updated snapshot.
type RegionSentiment struct {
	RegionID       string                         `gorm:"primaryKey" json:"region_id"`
	RegionName     string                         `gorm:"not null" json:"region_name"`
	SentimentScore float64                        `gorm:"not null" json:"sentiment_score"`
	SentimentLabel SentimentLabel                 `gorm:"not null" json:"sentiment_label"`
	HeadlineCount  int                            `gorm:"not null" json:"headline_count"`
	BullCount      int                            `gorm:"not null" json:"bull_count"`
	BearCount      int                            `gorm:"not null" json:"bear_count"`
	NeutralCount   int                            `gorm:"not null" json:"neutral_count"`
	FilteredCount  int                            `gorm:"not null" json:"filtered_count"`
	TopHeadlines   datatypes.JSONSlice[Headline]  `json:"top_headlines"`
	LastUpdated    time.Time                      `gorm:"not null" json:"last_updated"`
}

// TableName specifies the table name for the RegionSentiment model.
func (RegionSentiment) TableName() string {
	return "region_sentiments"
}
