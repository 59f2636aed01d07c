package httpserver

import (
	"moviedex/errs"
	"moviedex/movie"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies/discover", s.handleDiscoverMovies)
	g.GET("/movies/trending", s.handleTrendingMovies)
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/:id", s.handleMovieDetail)
	g.GET("/movies/:id/providers", s.handleWatchProviders)
	g.GET("/genres", s.handleListGenres)
}

// handleDiscoverMovies godoc
// @Summary Discover Movies
// @Description Browse movies by genre, year, rating and sort order
// @Tags movies
// @Produce json
// @Param page query int false "Page (1-500)"
// @Param sort_by query string false "popularity, rating, release_date or a provider sort key"
// @Param genre query int false "Genre id"
// @Param year query int false "Primary release year"
// @Param min_rating query number false "Minimum vote average"
// @Success 200 {object} movie.Page
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/movies/discover [get]
func (s *Server) handleDiscoverMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	var req DiscoverMoviesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := s.MovieService.Discover(c.Request().Context(), req.ToQuery())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleTrendingMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	page, err := s.MovieService.Trending(c.Request().Context(), req.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Search movies by title
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page (1-500)"
// @Success 200 {object} movie.Page
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	var req SearchMoviesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return movie.ErrInvalidQuery
	}

	page, err := s.MovieService.Search(c.Request().Context(), req.Query, req.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleMovieDetail(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	detail, err := s.MovieService.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detail)
}

func (s *Server) handleWatchProviders(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req WatchProvidersRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return movie.ErrInvalidRegion
	}

	providers, err := s.MovieService.WatchProviders(c.Request().Context(), id, req.Region)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, providers)
}

func (s *Server) handleListGenres(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	genres, err := s.MovieService.Genres(c.Request().Context())
	if err != nil {
		return err
	}
	if genres == nil {
		genres = []movie.Genre{}
	}

	return c.JSON(http.StatusOK, genresResponse{Genres: genres})
}

var errMovieServiceMissing = errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")

func movieID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, movie.ErrInvalidID
	}
	return id, nil
}
