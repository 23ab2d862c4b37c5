package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/geo"
	"github.com/nyayarakshak/backend/pkg/patrol"

	"github.com/labstack/echo/v4"
)

func loadFirs(c echo.Context) ([]fir.FIR, error) {
	app := c.(*middleware.AppContext).App
	rows, err := db.New(app.DBConn).ListFirs(c.Request().Context())
	if err != nil {
		return nil, err
	}

	firs := make([]fir.FIR, 0, len(rows))
	for _, row := range rows {
		record := fir.FIR{
			FIRID:        row.ID,
			CaseID:       row.CaseID,
			SourceFile:   row.SourceFile,
			CrimeType:    row.CrimeType,
			LocationText: row.LocationText,
			Status:       row.Status,
		}
		if row.GeoLat != nil && row.GeoLon != nil {
			record.Geo = &geo.Point{Lat: *row.GeoLat, Lon: *row.GeoLon}
		}
		firs = append(firs, record)
	}
	return firs, nil
}

// PatrolScheduleHandler returns the evening patrol slots derived from
// pending complaints.
func PatrolScheduleHandler(c echo.Context) error {
	type errorResponse struct {
		Message string `json:"message"`
	}

	firs, err := loadFirs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, patrol.Schedule(firs))
}

// DeploymentRecommendationsHandler returns unit recommendations for
// zones with repeat incidents.
func DeploymentRecommendationsHandler(c echo.Context) error {
	type errorResponse struct {
		Message string `json:"message"`
	}

	firs, err := loadFirs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, patrol.Recommendations(firs))
}
