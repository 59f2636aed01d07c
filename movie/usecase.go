package movie

import (
	"context"
	"strings"
)

const (
	DefaultSort   = "popularity.desc"
	DefaultRegion = "IN"
)

// short sort names used by the browse page
var sortAliases = map[string]string{
	"popularity":   "popularity.desc",
	"rating":       "vote_average.desc",
	"release_date": "release_date.desc",
}

var sortKeys = map[string]bool{
	"popularity.desc":           true,
	"popularity.asc":            true,
	"vote_average.desc":         true,
	"vote_average.asc":          true,
	"release_date.desc":         true,
	"release_date.asc":          true,
	"primary_release_date.desc": true,
	"primary_release_date.asc":  true,
	"revenue.desc":              true,
	"title.asc":                 true,
}

type Service interface {
	Discover(ctx context.Context, q DiscoverQuery) (Page, error)
	Trending(ctx context.Context, page int) (Page, error)
	Search(ctx context.Context, query string, page int) (Page, error)
	Detail(ctx context.Context, id int) (Detail, error)
	WatchProviders(ctx context.Context, id int, region string) (WatchProviders, error)
	Genres(ctx context.Context) ([]Genre, error)
}

// Provider is the upstream movie metadata source. It receives already
// normalised arguments.
type Provider interface {
	Discover(ctx context.Context, q DiscoverQuery) (Page, error)
	Trending(ctx context.Context, page int) (Page, error)
	Search(ctx context.Context, query string, page int) (Page, error)
	Detail(ctx context.Context, id int) (Detail, error)
	WatchProviders(ctx context.Context, id int, region string) (WatchProviders, error)
	Genres(ctx context.Context) ([]Genre, error)
}

type Usecase struct {
	p Provider
}

func NewUsecase(p Provider) *Usecase {
	return &Usecase{p: p}
}

func (uc *Usecase) Discover(ctx context.Context, q DiscoverQuery) (Page, error) {
	sortBy, err := NormalizeSort(q.SortBy)
	if err != nil {
		return Page{}, err
	}
	q.SortBy = sortBy
	if q.GenreID < 0 {
		q.GenreID = 0
	}
	if q.MinRating < 0 {
		q.MinRating = 0
	}

	return uc.paged(q.Page, func(page int) (Page, error) {
		q.Page = page
		return uc.p.Discover(ctx, q)
	})
}

func (uc *Usecase) Trending(ctx context.Context, page int) (Page, error) {
	return uc.paged(page, func(page int) (Page, error) {
		return uc.p.Trending(ctx, page)
	})
}

func (uc *Usecase) Search(ctx context.Context, query string, page int) (Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, ErrInvalidQuery
	}

	return uc.paged(page, func(page int) (Page, error) {
		return uc.p.Search(ctx, query, page)
	})
}

func (uc *Usecase) Detail(ctx context.Context, id int) (Detail, error) {
	if id <= 0 {
		return Detail{}, ErrInvalidID
	}
	return uc.p.Detail(ctx, id)
}

func (uc *Usecase) WatchProviders(ctx context.Context, id int, region string) (WatchProviders, error) {
	if id <= 0 {
		return WatchProviders{}, ErrInvalidID
	}
	region, err := NormalizeRegion(region)
	if err != nil {
		return WatchProviders{}, err
	}
	return uc.p.WatchProviders(ctx, id, region)
}

func (uc *Usecase) Genres(ctx context.Context) ([]Genre, error) {
	return uc.p.Genres(ctx)
}

// paged fetches a clamped page and, when the request ran past the last
// page, fetches the last page instead.
func (uc *Usecase) paged(page int, fetch func(page int) (Page, error)) (Page, error) {
	page = ClampPage(page, MaxPages)
	p, err := fetch(page)
	if err != nil {
		return Page{}, err
	}
	p = capTotalPages(p)

	if p.TotalPages > 0 && page > p.TotalPages {
		p, err = fetch(p.TotalPages)
		if err != nil {
			return Page{}, err
		}
		p = capTotalPages(p)
	}

	if p.Results == nil {
		p.Results = []Movie{}
	}
	return p, nil
}

// ClampPage keeps page inside [1, totalPages]. A non-positive totalPages
// only applies the lower bound.
func ClampPage(page, totalPages int) int {
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func capTotalPages(p Page) Page {
	if p.TotalPages > MaxPages {
		p.TotalPages = MaxPages
	}
	return p
}

// NormalizeSort maps a sort alias or provider key to a provider key.
func NormalizeSort(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSort, nil
	}
	if key, ok := sortAliases[s]; ok {
		return key, nil
	}
	if sortKeys[s] {
		return s, nil
	}
	return "", ErrInvalidSort
}

// NormalizeRegion returns an upper-cased ISO 3166-1 alpha-2 code.
func NormalizeRegion(region string) (string, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return DefaultRegion, nil
	}
	if len(region) != 2 || region[0] < 'A' || region[0] > 'Z' || region[1] < 'A' || region[1] > 'Z' {
		return "", ErrInvalidRegion
	}
	return region, nil
}
