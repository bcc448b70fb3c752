package statushandler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const Running = "API running"

type StatusResponse struct {
	Status string `json:"status"`
}

// StatusHandler reports that the process is up and serving requests.
func StatusHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: Running})
}
