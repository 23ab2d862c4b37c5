package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/pkg/patrol"

	"github.com/labstack/echo/v4"
)

// RecommendCamerasHandler ranks the caller's CCTV units by proximity to
// the crime hour so investigators pull the most relevant footage first.
func RecommendCamerasHandler(c echo.Context) error {
	type recommendBody struct {
		CrimeTime int             `json:"crime_time" validate:"gte=0,lte=23"`
		Cameras   []patrol.Camera `json:"cameras" validate:"required"`
	}

	type recommendResponse struct {
		Message     string          `json:"message,omitempty"`
		Recommended []patrol.Camera `json:"recommended"`
	}

	data := new(recommendBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, recommendResponse{
			Message:     "Invalid request body",
			Recommended: []patrol.Camera{},
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, recommendResponse{
			Message:     "Invalid request body",
			Recommended: []patrol.Camera{},
		})
	}

	return c.JSON(http.StatusOK, recommendResponse{
		Recommended: patrol.RecommendCameras(data.CrimeTime, data.Cameras),
	})
}
