package httpserver

import (
	"moviedex/errs"
	"moviedex/testimonial"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterTestimonialRoutes(g *echo.Group) {
	g.GET("/testimonials", s.handleListTestimonials)
	g.POST("/testimonials", s.handleAddTestimonial)
}

// handleListTestimonials godoc
// @Summary List Testimonials
// @Description Get testimonials, newest first
// @Tags testimonials
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {object} testimonialsResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/testimonials [get]
func (s *Server) handleListTestimonials(c echo.Context) error {
	if s.TestimonialService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "testimonial service not configured")
	}

	limit := 0
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return testimonial.ErrInvalidLimit
		}
		limit = parsed
	}

	list, err := s.TestimonialService.ListTestimonials(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []testimonial.Testimonial{}
	}

	return c.JSON(http.StatusOK, testimonialsResponse{Testimonials: list})
}

// handleAddTestimonial godoc
// @Summary Create Testimonial
// @Description Add a new testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Param testimonial body AddTestimonialRequest true "Testimonial Data"
// @Success 201 {object} testimonial.Testimonial
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/testimonials [post]
func (s *Server) handleAddTestimonial(c echo.Context) error {
	if s.TestimonialService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "testimonial service not configured")
	}

	var req AddTestimonialRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	created, err := s.TestimonialService.AddTestimonial(c.Request().Context(), req.ToTestimonial())
	if err != nil {
		return err
	}
	s.Metrics.RecordTestimonialCreated()

	return c.JSON(http.StatusCreated, created)
}
