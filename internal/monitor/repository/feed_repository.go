package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/internal/monitor/config"
	"econ-mood-monitor/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// FeedRepository fetches a region's raw headline list from a structured news
// source. It knows nothing about sentiment.
type FeedRepository interface {
	FetchHeadlines(ctx context.Context, region config.Region) ([]entity.RawHeadline, error)
}

// NewGoogleNewsFeedRepository creates a FeedRepository backed by Google News
// RSS search feeds.
func NewGoogleNewsFeedRepository(cfg config.Feed, log *logger.Logger) FeedRepository {
	maxPerMinute := cfg.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 30
	}
	return &googleNewsFeedRepository{
		cfg: cfg,
		log: log,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
		inmemoryCache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

type googleNewsFeedRepository struct {
	cfg            config.Feed
	log            *logger.Logger
	client         *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
}

// FetchHeadlines fetches and parses the region's RSS feed with bounded
// retries. Results are cached briefly so back-to-back manual triggers do not
// hammer the upstream feed.
func (r *googleNewsFeedRepository) FetchHeadlines(ctx context.Context, region config.Region) ([]entity.RawHeadline, error) {
	if cached, ok := r.inmemoryCache.Get(region.ID); ok {
		return cached.([]entity.RawHeadline), nil
	}

	feedURL := r.buildFeedURL(region)

	var lastErr error
	backoff := r.cfg.InitialBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	attempts := r.cfg.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		headlines, err := r.fetchOnce(ctx, feedURL)
		if err == nil {
			r.inmemoryCache.Set(region.ID, headlines, cache.DefaultExpiration)
			return headlines, nil
		}
		lastErr = err

		r.log.Warn("feed fetch attempt failed",
			logger.StringField("region_id", region.ID),
			logger.IntField("attempt", attempt),
			logger.ErrorField(err),
		)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("feed fetch failed after %d attempts: %w", attempts, lastErr)
}

func (r *googleNewsFeedRepository) fetchOnce(ctx context.Context, feedURL string) ([]entity.RawHeadline, error) {
	fp := gofeed.NewParser()
	fp.Client = r.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	headlines := make([]entity.RawHeadline, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := cleanTitle(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, entity.RawHeadline{
			Title:       title,
			Source:      extractSource(item),
			URL:         item.Link,
			PublishedAt: item.PublishedParsed,
		})
	}
	return headlines, nil
}

func (r *googleNewsFeedRepository) buildFeedURL(region config.Region) string {
	base := r.cfg.BaseURL
	if base == "" {
		base = "https://news.google.com/rss"
	}
	params := url.Values{}
	params.Set("q", region.Query)
	params.Set("hl", region.HL)
	params.Set("gl", region.GL)
	params.Set("ceid", region.CEID)
	return fmt.Sprintf("%s/search?%s", base, params.Encode())
}

// cleanTitle strips the " - Publisher" suffix Google News appends to item
// titles.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		suffix := title[idx+3:]
		if len(suffix) > 0 && len(suffix) < 50 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}

// extractSource pulls the publisher name out of the item. Google News puts it
// in a <font> element inside the description HTML; the title suffix is the
// fallback.
func extractSource(item *gofeed.Item) string {
	if item.Description != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.Description)); err == nil {
			if src := strings.TrimSpace(doc.Find("font").First().Text()); src != "" {
				return src
			}
		}
	}
	if idx := strings.LastIndex(item.Title, " - "); idx > 0 {
		suffix := strings.TrimSpace(item.Title[idx+3:])
		if len(suffix) > 0 && len(suffix) < 50 {
			return suffix
		}
	}
	return "Google News"
}
