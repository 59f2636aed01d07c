package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"moviedex/errs"
	"moviedex/movie"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 * 1024 * 1024
)

var (
	ErrNotConfigured = errs.Errorf(errs.ENOTIMPLEMENTED, "movie provider not configured")
	ErrUnavailable   = errs.Errorf(errs.EUNAVAILABLE, "movie provider unavailable")
)

// Recorder receives one call per upstream request.
type Recorder interface {
	RecordProviderRequest(endpoint string, err error)
}

type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	// RateLimit is requests per second; zero disables throttling.
	RateLimit  float64
	HTTPClient *http.Client
	Recorder   Recorder
}

// Client talks to the TMDB v3 API and implements movie.Provider.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
	limiter  *rate.Limiter
	recorder Recorder
}

func New(opts Options) *Client {
	c := &Client{
		apiKey:   opts.APIKey,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		language: opts.Language,
		client:   opts.HTTPClient,
		recorder: opts.Recorder,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: requestTimeout}
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

type genreList struct {
	Genres []movie.Genre `json:"genres"`
}

type providerResults struct {
	Results map[string]movie.WatchProviders `json:"results"`
}

func (c *Client) Discover(ctx context.Context, q movie.DiscoverQuery) (movie.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("sort_by", q.SortBy)
	params.Set("include_adult", "false")
	if q.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(q.GenreID))
	} else {
		params.Set("with_watch_monetization_types", "flatrate")
	}
	if q.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(q.Year))
	}
	if q.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}

	var page movie.Page
	err := c.get(ctx, "discover", "/discover/movie", params, &page)
	return page, err
}

func (c *Client) Trending(ctx context.Context, page int) (movie.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var p movie.Page
	err := c.get(ctx, "trending", "/trending/movie/week", params, &p)
	return p, err
}

func (c *Client) Search(ctx context.Context, query string, page int) (movie.Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var p movie.Page
	err := c.get(ctx, "search", "/search/movie", params, &p)
	return p, err
}

func (c *Client) Detail(ctx context.Context, id int) (movie.Detail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")

	var d movie.Detail
	err := c.get(ctx, "detail", "/movie/"+strconv.Itoa(id), params, &d)
	return d, err
}

// WatchProviders returns the offers for one region. A region without offers
// yields empty lists, not an error.
func (c *Client) WatchProviders(ctx context.Context, id int, region string) (movie.WatchProviders, error) {
	var res providerResults
	if err := c.get(ctx, "watch_providers", "/movie/"+strconv.Itoa(id)+"/watch/providers", url.Values{}, &res); err != nil {
		return movie.WatchProviders{}, err
	}

	wp := res.Results[region]
	wp.Region = region
	if wp.Flatrate == nil {
		wp.Flatrate = []movie.WatchProvider{}
	}
	if wp.Rent == nil {
		wp.Rent = []movie.WatchProvider{}
	}
	if wp.Buy == nil {
		wp.Buy = []movie.WatchProvider{}
	}
	return wp, nil
}

func (c *Client) Genres(ctx context.Context) ([]movie.Genre, error) {
	var list genreList
	if err := c.get(ctx, "genres", "/genre/movie/list", url.Values{}, &list); err != nil {
		return nil, err
	}
	if list.Genres == nil {
		return []movie.Genre{}, nil
	}
	return list.Genres, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	err := c.do(ctx, path, params, out)
	if c.recorder != nil {
		c.recorder.RecordProviderRequest(endpoint, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return movie.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errs.Errorf(errs.EUNAVAILABLE, "movie provider responded with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return errs.Errorf(errs.EUNAVAILABLE, "movie provider sent an unreadable response")
	}
	return nil
}
