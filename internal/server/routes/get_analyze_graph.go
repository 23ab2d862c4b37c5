package routes

import (
	"encoding/json"
	"net/http"

	"github.com/nyayarakshak/backend/internal/queue"
	"github.com/nyayarakshak/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// RefreshGraphHandler schedules a hotspot and graph recompute on the
// worker. Fire-and-forget from the client's perspective.
func RefreshGraphHandler(c echo.Context) error {
	type refreshResponse struct {
		Message string `json:"message"`
	}

	app := c.(*middleware.AppContext).App

	msg, err := json.Marshal(queue.RefreshMsg{Trigger: "api"})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, refreshResponse{
			Message: "Internal server error",
		})
	}

	if err := queue.PublishFIFO(app.Queue, queue.RefreshQueue, msg); err != nil {
		return c.JSON(http.StatusInternalServerError, refreshResponse{
			Message: "Failed to schedule refresh",
		})
	}

	return c.JSON(http.StatusAccepted, refreshResponse{
		Message: "Refresh scheduled",
	})
}
