package httpserver

import (
	"moviedex/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterContactRoutes(g *echo.Group) {
	g.POST("/contact", s.handleSendContact)
}

// handleSendContact godoc
// @Summary Send Contact Message
// @Description Relay a message from the contact page to the site owner
// @Tags contact
// @Accept json
// @Produce json
// @Param message body SendContactRequest true "Message"
// @Success 200 {object} contactResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/contact [post]
func (s *Server) handleSendContact(c echo.Context) error {
	if s.ContactService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "contact service not configured")
	}

	var req SendContactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := s.ContactService.SendMessage(c.Request().Context(), req.ToMessage())
	s.Metrics.RecordContactMessage(err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contactResponse{
		Success: true,
		Message: "Message sent successfully",
	})
}
