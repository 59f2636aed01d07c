package redis_test

import (
	"context"
	"encoding/json"
	"errors"
	"moviedex/movie"
	"moviedex/redis"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Discover(ctx context.Context, q movie.DiscoverQuery) (movie.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockProvider) Trending(ctx context.Context, page int) (movie.Page, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockProvider) Search(ctx context.Context, query string, page int) (movie.Page, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockProvider) Detail(ctx context.Context, id int) (movie.Detail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Detail), args.Error(1)
}

func (m *MockProvider) WatchProviders(ctx context.Context, id int, region string) (movie.WatchProviders, error) {
	args := m.Called(ctx, id, region)
	return args.Get(0).(movie.WatchProviders), args.Error(1)
}

func (m *MockProvider) Genres(ctx context.Context) ([]movie.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Genre), args.Error(1)
}

const ttl = 5 * time.Minute

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestMovieCache_Trending(t *testing.T) {
	page := movie.Page{Page: 1, TotalPages: 10, Results: []movie.Movie{{ID: 603, Title: "The Matrix"}}}
	key := redis.Key("trending:page=1")

	t.Run("miss fetches and stores", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		p := new(MockProvider)
		cache := redis.NewMovieCache(p, rdb, ttl, nil)
		rmock.ExpectGet(key).RedisNil()
		p.On("Trending", mock.Anything, 1).Return(page, nil).Once()
		rmock.ExpectSet(key, mustJSON(t, page), ttl).SetVal("OK")

		got, err := cache.Trending(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, page, got)
		p.AssertExpectations(t)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("hit skips the provider", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		p := new(MockProvider)
		cache := redis.NewMovieCache(p, rdb, ttl, nil)
		rmock.ExpectGet(key).SetVal(string(mustJSON(t, page)))

		got, err := cache.Trending(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, page, got)
		p.AssertNotCalled(t, "Trending", mock.Anything, mock.Anything)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("read failure falls back to the provider", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		p := new(MockProvider)
		cache := redis.NewMovieCache(p, rdb, ttl, nil)
		rmock.ExpectGet(key).SetErr(errors.New("connection refused"))
		p.On("Trending", mock.Anything, 1).Return(page, nil).Once()
		rmock.ExpectSet(key, mustJSON(t, page), ttl).SetErr(errors.New("connection refused"))

		got, err := cache.Trending(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, page, got)
		p.AssertExpectations(t)
	})

	t.Run("unreadable entry is refetched", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		p := new(MockProvider)
		cache := redis.NewMovieCache(p, rdb, ttl, nil)
		rmock.ExpectGet(key).SetVal("{not json")
		p.On("Trending", mock.Anything, 1).Return(page, nil).Once()
		rmock.ExpectSet(key, mustJSON(t, page), ttl).SetVal("OK")

		got, err := cache.Trending(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, page, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("provider errors are not cached", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		p := new(MockProvider)
		cache := redis.NewMovieCache(p, rdb, ttl, nil)
		upstream := errors.New("upstream down")
		rmock.ExpectGet(key).RedisNil()
		p.On("Trending", mock.Anything, 1).Return(movie.Page{}, upstream).Once()

		_, err := cache.Trending(context.Background(), 1)

		assert.ErrorIs(t, err, upstream)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}

func TestMovieCache_Keys(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	p := new(MockProvider)
	cache := redis.NewMovieCache(p, rdb, 0, nil)

	q := movie.DiscoverQuery{Page: 2, SortBy: "vote_average.desc", GenreID: 28, Year: 1999, MinRating: 7.5}
	discoverKey := redis.Key("discover:page=2:sort=vote_average.desc:genre=28:year=1999:rating=7.5")
	searchKey := redis.Key("search:page=1:q=alien")
	detailKey := redis.Key("detail:id=603")
	providersKey := redis.Key("providers:id=603:region=IN")
	genresKey := redis.Key("genres")

	rmock.ExpectGet(discoverKey).SetVal(`{"page":2}`)
	rmock.ExpectGet(searchKey).SetVal(`{"page":1}`)
	rmock.ExpectGet(detailKey).SetVal(`{"id":603}`)
	rmock.ExpectGet(providersKey).SetVal(`{"region":"IN"}`)
	rmock.ExpectGet(genresKey).SetVal(`[{"id":28,"name":"Action"}]`)

	discovered, err := cache.Discover(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, discovered.Page)

	_, err = cache.Search(context.Background(), "alien", 1)
	require.NoError(t, err)

	detail, err := cache.Detail(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, 603, detail.ID)

	providers, err := cache.WatchProviders(context.Background(), 603, "IN")
	require.NoError(t, err)
	assert.Equal(t, "IN", providers.Region)

	genres, err := cache.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []movie.Genre{{ID: 28, Name: "Action"}}, genres)

	assert.NoError(t, rmock.ExpectationsWereMet())
	p.AssertNotCalled(t, "Discover", mock.Anything, mock.Anything)
}
