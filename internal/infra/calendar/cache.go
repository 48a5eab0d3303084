package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"eleva-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes busy lookups for a short TTL. Availability
// pages refresh aggressively during checkout; without the cache every
// page load hits the calendar service.
type CachedProvider struct {
	inner  shared.CalendarProvider
	client *redis.Client
	ttl    time.Duration
}

func NewCachedProvider(inner shared.CalendarProvider, client *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, client: client, ttl: ttl}
}

func cacheKey(expertID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("cal_busy:%s:%d:%d", expertID, from.UTC().Unix(), to.UTC().Unix())
}

func (p *CachedProvider) BusyIntervals(ctx context.Context, expertID uuid.UUID, from, to time.Time) ([]shared.BusyInterval, error) {
	key := cacheKey(expertID, from, to)

	if raw, err := p.client.Get(ctx, key).Bytes(); err == nil {
		var cached []shared.BusyInterval
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry, fall through to the source.
	}

	intervals, err := p.inner.BusyIntervals(ctx, expertID, from, to)
	if err != nil {
		// Upstream failures are not cached; the next request retries.
		return nil, err
	}

	if raw, err := json.Marshal(intervals); err == nil {
		if err := p.client.Set(ctx, key, raw, p.ttl).Err(); err != nil {
			slog.Warn("failed to cache calendar busy intervals", "error", err.Error())
		}
	}
	return intervals, nil
}
