package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/geo"

	"github.com/labstack/echo/v4"
)

const recentComplaintLimit = 10

// LawOrderDashboardHandler aggregates the stored FIRs into the
// dashboard feed: headline stats, complaint counts by crime type, and
// the most recent complaints with canonical geo.
func LawOrderDashboardHandler(c echo.Context) error {
	type dashboardStats struct {
		ActiveUnits       int   `json:"active_units"`
		HighRiskZones     int64 `json:"high_risk_zones"`
		PendingComplaints int   `json:"pending_complaints"`
		TotalComplaints   int64 `json:"total_complaints"`
		CommunityUploads  int64 `json:"community_uploads"`
	}

	type recentComplaint struct {
		FIRID         string     `json:"fir_id"`
		CrimeType     string     `json:"crime_type"`
		Location      string     `json:"location"`
		Time          string     `json:"time"`
		Date          string     `json:"date"`
		Geo           *geo.Point `json:"geo"`
		Sections      string     `json:"sections"`
		Status        string     `json:"status"`
		Priority      string     `json:"priority"`
		ComplaintText string     `json:"complaint_text"`
	}

	type dashboardResponse struct {
		Message          string            `json:"message,omitempty"`
		Stats            dashboardStats    `json:"stats"`
		ComplaintCounts  map[string]int64  `json:"complaint_counts"`
		RecentComplaints []recentComplaint `json:"recent_complaints"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	queries := db.New(app.DBConn)

	firs, err := queries.ListFirs(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dashboardResponse{
			Message: "Internal server error",
		})
	}

	total, err := queries.CountFirs(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dashboardResponse{
			Message: "Internal server error",
		})
	}

	counts, err := queries.CountFirsByCrimeType(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dashboardResponse{
			Message: "Internal server error",
		})
	}

	highRiskZones, err := queries.CountHotspotClusters(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dashboardResponse{
			Message: "Internal server error",
		})
	}

	complaintCounts := make(map[string]int64, len(counts))
	for _, count := range counts {
		crime := count.CrimeType
		if crime == "" {
			crime = "Other"
		}
		complaintCounts[crime] += count.Count
	}

	pending := 0
	for _, row := range firs {
		if row.Status == fir.StatusPending {
			pending++
		}
	}

	recentRows, err := queries.ListRecentFirs(ctx, recentComplaintLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dashboardResponse{
			Message: "Internal server error",
		})
	}

	recent := make([]recentComplaint, 0, len(recentRows))
	for _, row := range recentRows {
		var point *geo.Point
		if row.GeoLat != nil && row.GeoLon != nil {
			point = &geo.Point{Lat: *row.GeoLat, Lon: *row.GeoLon}
		}
		recent = append(recent, recentComplaint{
			FIRID:         row.ID,
			CrimeType:     row.CrimeType,
			Location:      row.LocationText,
			Time:          row.FirTime,
			Date:          row.FirDate,
			Geo:           point,
			Sections:      row.Sections,
			Status:        row.Status,
			Priority:      row.Priority,
			ComplaintText: row.ComplaintText,
		})
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Stats: dashboardStats{
			ActiveUnits:       24,
			HighRiskZones:     highRiskZones,
			PendingComplaints: pending,
			TotalComplaints:   total,
			// Community intake is ack-only; nothing is stored to count.
			CommunityUploads:  0,
		},
		ComplaintCounts:  complaintCounts,
		RecentComplaints: recent,
	})
}
