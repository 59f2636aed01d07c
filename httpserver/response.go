package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const successMessage = "OK"

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type testimonialsResponse struct {
	Testimonials interface{} `json:"testimonials"`
}

type genresResponse struct {
	Genres interface{} `json:"genres"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}
