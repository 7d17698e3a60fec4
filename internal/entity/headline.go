package entity

import (
	"time"
)

// SentimentLabel classifies a headline or an aggregate as positive, neutral
// or negative.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Headline is a single classified news headline. Headlines are immutable once
// classified; they only live inside a snapshot's top headlines and in the
// headline history.
type Headline struct {
	Title          string         `json:"title"`
	Source         string         `json:"source"`
	URL            string         `json:"url"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
}

// RawHeadline is a headline as fetched from a feed, before filtering and
// classification.
type RawHeadline struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
