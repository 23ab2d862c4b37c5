package routes

import (
	"net/http"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/alerts"
	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SendSMSHandler generates a calm advisory message for the alert
// context and delivers it over the SMS gateway. Sent alerts are
// recorded newest-first for the dashboard.
func SendSMSHandler(c echo.Context) error {
	type sendSMSBody struct {
		Phone     string   `json:"phone" validate:"required"`
		Zone      string   `json:"zone" validate:"required"`
		CrimeType string   `json:"crime_type" validate:"required"`
		Risk      float64  `json:"risk" validate:"gte=0,lte=1"`
		TimeRisk  *float64 `json:"time_risk" validate:"omitempty,gte=0,lte=1"`
		Event     string   `json:"event"`
	}

	type sendSMSResponse struct {
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
		AlertID string `json:"alert_id,omitempty"`
		Text    string `json:"text,omitempty"`
	}

	data := new(sendSMSBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, sendSMSResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, sendSMSResponse{
			Message: "Invalid request body",
		})
	}

	// With no time-of-day risk in the request, the area risk stands in
	// for it and the gate reduces to risk > 0.7.
	timeRisk := data.Risk
	if data.TimeRisk != nil {
		timeRisk = *data.TimeRisk
	}
	if !alerts.ShouldSend(data.Risk, timeRisk) {
		return c.JSON(http.StatusOK, sendSMSResponse{
			Status:  "suppressed",
			Message: "Risk below alert threshold",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	message, err := alerts.ComposeAlert(ctx, app.AiClient, alerts.Alert{
		Phone:     data.Phone,
		Zone:      data.Zone,
		CrimeType: data.CrimeType,
		Risk:      data.Risk,
		Event:     data.Event,
	})
	if err != nil {
		logger.Error("[Alerts] Failed to compose alert", "zone", data.Zone, "err", err)
		return c.JSON(http.StatusInternalServerError, sendSMSResponse{
			Message: "Failed to compose alert message",
		})
	}

	if err := app.SMS.SendSMS(ctx, data.Phone, message); err != nil {
		logger.Error("[Alerts] Failed to send SMS", "zone", data.Zone, "err", err)
		return c.JSON(http.StatusBadGateway, sendSMSResponse{
			Message: "Failed to deliver SMS",
		})
	}

	alertID, err := util.NewAlertID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, sendSMSResponse{
			Message: "Internal server error",
		})
	}

	err = db.New(app.DBConn).InsertAlert(ctx, db.InsertAlertParams{
		ID:        alertID,
		Phone:     data.Phone,
		Zone:      data.Zone,
		CrimeType: data.CrimeType,
		Risk:      data.Risk,
		Event:     data.Event,
		Message:   message,
	})
	if err != nil {
		logger.Error("[Alerts] Failed to record alert", "alert_id", alertID, "err", err)
	}

	return c.JSON(http.StatusOK, sendSMSResponse{
		Status:  "sent",
		AlertID: alertID,
		Text:    message,
	})
}
