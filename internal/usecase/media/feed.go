package media

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

const (
	TypeImage    = "IMAGE"
	TypeCarousel = "CAROUSEL_ALBUM"
	TypeVideo    = "VIDEO"

	DefaultLimit = 12
	MaxLimit     = 50
)

type Item struct {
	ID           string    `json:"id"`
	Caption      string    `json:"caption,omitempty"`
	MediaType    string    `json:"media_type"`
	MediaURL     string    `json:"media_url"`
	Permalink    string    `json:"permalink"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Username     string    `json:"username"`
}

type Source interface {
	Recent(ctx context.Context, limit int) ([]Item, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Result struct {
	Items    []Item
	Fallback bool
}

// Feed proxies the account's recent posts. It never fails: without a token
// or when the upstream call fails a fixed set of sample posts is served.
type Feed struct {
	source   Source
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
	log      *zap.Logger
}

func NewFeed(source Source, cache Cache, cacheTTL, timeout time.Duration, log *zap.Logger) *Feed {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Feed{
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		timeout:  timeout,
		log:      log,
	}
}

// ClampLimit maps a requested page size into 1..MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func (f *Feed) Recent(ctx context.Context, limit int) Result {
	limit = ClampLimit(limit)
	key := fmt.Sprintf("recent:%d", limit)

	if f.cache != nil {
		var cached []Item
		hit, err := f.cache.Get(ctx, key, &cached)
		if err != nil {
			f.log.Warn("media cache read failed", zap.Error(err))
		}
		if hit {
			return Result{Items: cached}
		}
	}

	items, err := f.fetch(ctx, limit)
	if err != nil {
		f.log.Warn("media feed unavailable, serving sample posts", zap.Error(err))
		return Result{Items: samplePosts(limit), Fallback: true}
	}

	if f.cache != nil && f.cacheTTL > 0 {
		if err := f.cache.Set(ctx, key, items, f.cacheTTL); err != nil {
			f.log.Warn("media cache write failed", zap.Error(err))
		}
	}
	return Result{Items: items}
}

func (f *Feed) fetch(ctx context.Context, limit int) ([]Item, error) {
	if f.source == nil {
		return nil, fmt.Errorf("%w: no access token configured", domain.ErrMediaFetchFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, err := f.source.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaFetchFailed, err)
	}
	return Displayable(raw, limit), nil
}

// Displayable keeps images, albums and videos, showing videos by their
// thumbnail, and returns at most limit items.
func Displayable(items []Item, limit int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch it.MediaType {
		case TypeImage, TypeCarousel:
		case TypeVideo:
			if it.ThumbnailURL != "" {
				it.MediaURL = it.ThumbnailURL
			}
		default:
			continue
		}
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}
