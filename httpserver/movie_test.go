package httpserver_test

import (
	"context"
	"moviedex/errs"
	"moviedex/httpserver"
	"moviedex/movie"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Discover(ctx context.Context, q movie.DiscoverQuery) (movie.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) Trending(ctx context.Context, page int) (movie.Page, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) Search(ctx context.Context, query string, page int) (movie.Page, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) Detail(ctx context.Context, id int) (movie.Detail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Detail), args.Error(1)
}

func (m *MockMovieService) WatchProviders(ctx context.Context, id int, region string) (movie.WatchProviders, error) {
	args := m.Called(ctx, id, region)
	return args.Get(0).(movie.WatchProviders), args.Error(1)
}

func (m *MockMovieService) Genres(ctx context.Context) ([]movie.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Genre), args.Error(1)
}

func newMovieServer(svc movie.Service) *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.MovieService = svc
	return server
}

func get(server *httpserver.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDiscoverMovies(t *testing.T) {
	t.Run("should bind every filter", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)
		q := movie.DiscoverQuery{Page: 2, SortBy: "rating", GenreID: 28, Year: 1999, MinRating: 7.5}
		svc.On("Discover", mock.Anything, q).Return(movie.Page{Page: 2, TotalPages: 500, Results: []movie.Movie{{ID: 603, Title: "The Matrix"}}}, nil).Once()

		rec := get(server, "/api/movies/discover?page=2&sort_by=rating&genre=28&year=1999&min_rating=7.5")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_pages":500`)
		assert.Contains(t, rec.Body.String(), `"title":"The Matrix"`)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		query string
	}{
		{name: "rating above ten", query: "min_rating=11"},
		{name: "year too early", query: "year=1200"},
		{name: "page not a number", query: "page=two"},
		{name: "negative genre", query: "genre=-3"},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newMovieServer(svc)

			rec := get(server, "/api/movies/discover?"+tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeErrorMessage(t, rec))
			svc.AssertNotCalled(t, "Discover", mock.Anything, mock.Anything)
		})
	}

	t.Run("should return 502 when the provider is down", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)
		svc.On("Discover", mock.Anything, mock.Anything).Return(movie.Page{}, errs.Errorf(errs.EUNAVAILABLE, "movie provider unavailable")).Once()

		rec := get(server, "/api/movies/discover")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"message":"movie provider unavailable"}`, rec.Body.String())
	})
}

func TestTrendingMovies(t *testing.T) {
	svc := new(MockMovieService)
	server := newMovieServer(svc)
	svc.On("Trending", mock.Anything, 0).Return(movie.Page{Page: 1, Results: []movie.Movie{}}, nil).Once()
	svc.On("Trending", mock.Anything, 4).Return(movie.Page{Page: 4, Results: []movie.Movie{}}, nil).Once()

	assert.Equal(t, http.StatusOK, get(server, "/api/movies/trending").Code)
	assert.Equal(t, http.StatusOK, get(server, "/api/movies/trending?page=4").Code)
	svc.AssertExpectations(t)
}

func TestSearchMovies(t *testing.T) {
	t.Run("should pass query and page", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)
		svc.On("Search", mock.Anything, "blade runner", 3).Return(movie.Page{Page: 3}, nil).Once()

		rec := get(server, "/api/movies/search?q=blade+runner&page=3")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	for _, target := range []string{"/api/movies/search", "/api/movies/search?q=%20%20"} {
		t.Run("should reject "+target, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newMovieServer(svc)

			rec := get(server, target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, movie.ErrInvalidQuery.Message, decodeErrorMessage(t, rec))
			svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMovieDetail(t *testing.T) {
	t.Run("should return the detail", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)
		svc.On("Detail", mock.Anything, 603).Return(movie.Detail{ID: 603, Title: "The Matrix", Runtime: 136}, nil).Once()

		rec := get(server, "/api/movies/603")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"runtime":136`)
	})

	t.Run("should return 404 for an unknown movie", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)
		svc.On("Detail", mock.Anything, 999999).Return(movie.Detail{}, movie.ErrNotFound).Once()

		rec := get(server, "/api/movies/999999")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"movie not found"}`, rec.Body.String())
	})

	for _, id := range []string{"abc", "0", "-5"} {
		t.Run("should reject id "+id, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newMovieServer(svc)

			rec := get(server, "/api/movies/"+id)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, movie.ErrInvalidID.Message, decodeErrorMessage(t, rec))
		})
	}
}

func TestWatchProviders(t *testing.T) {
	t.Run("should pass the region", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)
		svc.On("WatchProviders", mock.Anything, 603, "us").Return(movie.WatchProviders{Region: "US"}, nil).Once()

		rec := get(server, "/api/movies/603/providers?region=us")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"region":"US"`)
		svc.AssertExpectations(t)
	})

	t.Run("should reject a malformed region", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc)

		rec := get(server, "/api/movies/603/providers?region=USA")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, movie.ErrInvalidRegion.Message, decodeErrorMessage(t, rec))
	})
}

func TestListGenres(t *testing.T) {
	svc := new(MockMovieService)
	server := newMovieServer(svc)
	svc.On("Genres", mock.Anything).Return([]movie.Genre{{ID: 28, Name: "Action"}}, nil).Once()

	rec := get(server, "/api/genres")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"genres":[{"id":28,"name":"Action"}]}`, rec.Body.String())
}

func TestMovieRoutes_NotConfigured(t *testing.T) {
	server := httpserver.Default(testConfig())

	rec := get(server, "/api/movies/trending")

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
