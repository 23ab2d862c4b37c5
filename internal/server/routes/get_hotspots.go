package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/pkg/geo"

	"github.com/labstack/echo/v4"
)

// HotspotsHandler returns the clusters from the latest hotspot refresh,
// ordered by crime count.
func HotspotsHandler(c echo.Context) error {
	type hotspotEntry struct {
		ClusterID  int32     `json:"cluster_id"`
		Centroid   geo.Point `json:"centroid"`
		CrimeCount int32     `json:"crime_count"`
	}

	type hotspotsResponse struct {
		Message  string         `json:"message,omitempty"`
		RunID    string         `json:"run_id,omitempty"`
		Hotspots []hotspotEntry `json:"hotspot_clusters"`
	}

	app := c.(*middleware.AppContext).App

	rows, err := db.New(app.DBConn).ListHotspotClusters(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, hotspotsResponse{
			Message:  "Internal server error",
			Hotspots: []hotspotEntry{},
		})
	}

	runID := ""
	entries := make([]hotspotEntry, 0, len(rows))
	for _, row := range rows {
		runID = row.RunID
		entries = append(entries, hotspotEntry{
			ClusterID:  row.ClusterID,
			Centroid:   geo.Point{Lat: row.CentroidLat, Lon: row.CentroidLon},
			CrimeCount: row.CrimeCount,
		})
	}

	return c.JSON(http.StatusOK, hotspotsResponse{RunID: runID, Hotspots: entries})
}
