package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"moviedex/movie"
	"moviedex/pkg/logger"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultTTL = 10 * time.Minute
	keyPrefix  = "moviedex:tmdb:"
)

// MovieCache is a movie.Provider that serves repeated requests from Redis.
// The cache is best effort: any Redis failure falls through to the wrapped
// provider and is only logged.
type MovieCache struct {
	next   movie.Provider
	rdb    goredis.Cmdable
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewMovieCache(next movie.Provider, rdb goredis.Cmdable, ttl time.Duration, log *zap.SugaredLogger) *MovieCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.NOOPLogger
	}
	return &MovieCache{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func (c *MovieCache) Discover(ctx context.Context, q movie.DiscoverQuery) (movie.Page, error) {
	key := fmt.Sprintf("discover:page=%d:sort=%s:genre=%d:year=%d:rating=%g", q.Page, q.SortBy, q.GenreID, q.Year, q.MinRating)
	return cached(ctx, c, key, func() (movie.Page, error) {
		return c.next.Discover(ctx, q)
	})
}

func (c *MovieCache) Trending(ctx context.Context, page int) (movie.Page, error) {
	return cached(ctx, c, fmt.Sprintf("trending:page=%d", page), func() (movie.Page, error) {
		return c.next.Trending(ctx, page)
	})
}

func (c *MovieCache) Search(ctx context.Context, query string, page int) (movie.Page, error) {
	return cached(ctx, c, fmt.Sprintf("search:page=%d:q=%s", page, query), func() (movie.Page, error) {
		return c.next.Search(ctx, query, page)
	})
}

func (c *MovieCache) Detail(ctx context.Context, id int) (movie.Detail, error) {
	return cached(ctx, c, fmt.Sprintf("detail:id=%d", id), func() (movie.Detail, error) {
		return c.next.Detail(ctx, id)
	})
}

func (c *MovieCache) WatchProviders(ctx context.Context, id int, region string) (movie.WatchProviders, error) {
	return cached(ctx, c, fmt.Sprintf("providers:id=%d:region=%s", id, region), func() (movie.WatchProviders, error) {
		return c.next.WatchProviders(ctx, id, region)
	})
}

func (c *MovieCache) Genres(ctx context.Context) ([]movie.Genre, error) {
	return cached(ctx, c, "genres", func() ([]movie.Genre, error) {
		return c.next.Genres(ctx)
	})
}

// Key returns the full Redis key for a cache entry name.
func Key(name string) string {
	return keyPrefix + name
}

func cached[T any](ctx context.Context, c *MovieCache, name string, fetch func() (T, error)) (T, error) {
	key := Key(name)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		c.logger.Warnw("discarding unreadable cache entry", "key", key)
	case !errors.Is(err, goredis.Nil):
		c.logger.Warnw("cache read failed", "key", key, "error", err)
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	data, err = json.Marshal(v)
	if err != nil {
		c.logger.Warnw("cannot encode cache entry", "key", key, "error", err)
		return v, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("cache write failed", "key", key, "error", err)
	}
	return v, nil
}
