package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

const recentAlertLimit = 50

// RecentAlertsHandler lists the most recently sent SMS alerts.
func RecentAlertsHandler(c echo.Context) error {
	type alertEntry struct {
		AlertID   string  `json:"alert_id"`
		Phone     string  `json:"phone"`
		Zone      string  `json:"zone"`
		CrimeType string  `json:"crime_type"`
		Risk      float64 `json:"risk"`
		Event     string  `json:"event,omitempty"`
		Text      string  `json:"text"`
		SentAt    string  `json:"sent_at"`
	}

	type alertsResponse struct {
		Message string       `json:"message,omitempty"`
		Alerts  []alertEntry `json:"alerts"`
	}

	app := c.(*middleware.AppContext).App

	rows, err := db.New(app.DBConn).ListAlerts(c.Request().Context(), recentAlertLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, alertsResponse{
			Message: "Internal server error",
			Alerts:  []alertEntry{},
		})
	}

	entries := make([]alertEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, alertEntry{
			AlertID:   row.ID,
			Phone:     row.Phone,
			Zone:      row.Zone,
			CrimeType: row.CrimeType,
			Risk:      row.Risk,
			Event:     row.Event,
			Text:      row.Message,
			SentAt:    row.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return c.JSON(http.StatusOK, alertsResponse{Alerts: entries})
}
