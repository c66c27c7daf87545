package handler

import (
	"net/http"

	"corpgate/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	response.Envelope
	Status string `json:"status"`
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Envelope: response.Success(),
		Status:   "ok",
	})
}
