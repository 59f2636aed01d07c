package httpserver

import (
	"moviedex/contact"
	"moviedex/movie"
	"moviedex/testimonial"

	"github.com/labstack/echo/v4"
)

// bindJSON binds a JSON body. Clients that omit the Content-Type header are
// treated as sending JSON.
func bindJSON(c echo.Context, i interface{}) error {
	if c.Request().Header.Get(echo.HeaderContentType) == "" {
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return c.Bind(i)
}

// AddTestimonialRequest is checked by testimonial.Validate, not by tags, so
// a missing name or feedback always yields the same message.
type AddTestimonialRequest struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	Feedback string `json:"feedback"`
}

func (r AddTestimonialRequest) ToTestimonial() testimonial.Testimonial {
	return testimonial.Testimonial{
		Name:     r.Name,
		Avatar:   r.Avatar,
		Role:     r.Role,
		Feedback: r.Feedback,
	}
}

type DiscoverMoviesRequest struct {
	Page      int     `query:"page"`
	SortBy    string  `query:"sort_by" validate:"omitempty,max=40"`
	GenreID   int     `query:"genre" validate:"omitempty,min=1"`
	Year      int     `query:"year" validate:"omitempty,min=1874,max=2100"`
	MinRating float64 `query:"min_rating" validate:"omitempty,min=0,max=10"`
}

func (r DiscoverMoviesRequest) ToQuery() movie.DiscoverQuery {
	return movie.DiscoverQuery{
		Page:      r.Page,
		SortBy:    r.SortBy,
		GenreID:   r.GenreID,
		Year:      r.Year,
		MinRating: r.MinRating,
	}
}

type PageRequest struct {
	Page int `query:"page"`
}

type SearchMoviesRequest struct {
	Query string `query:"q" validate:"required,notblank,max=200"`
	Page  int    `query:"page"`
}

type WatchProvidersRequest struct {
	Region string `query:"region" validate:"omitempty,len=2,alpha"`
}

type SendContactRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

func (r SendContactRequest) ToMessage() contact.Message {
	return contact.Message{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}
