package server

import (
	"github.com/nyayarakshak/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Analysis routes
	e.POST("/analyze/", routes.AnalyzeVideoHandler)
	e.POST("/analyze/text", routes.AnalyzeTextHandler)
	e.GET("/analyze/graph", routes.RefreshGraphHandler)
	e.GET("/analyze/case-graph/", routes.GetCaseGraphHandler)

	// Document ingestion routes
	e.POST("/documents/", routes.UploadDocumentsHandler)

	// Dashboard and recommendation feeds
	e.GET("/law-order/dashboard", routes.LawOrderDashboardHandler)
	e.GET("/hotspots", routes.HotspotsHandler)
	e.GET("/patrolling/schedule", routes.PatrolScheduleHandler)
	e.GET("/deployment/recommendations", routes.DeploymentRecommendationsHandler)
	e.POST("/recommendations/", routes.RecommendCamerasHandler)

	// Community intake
	e.POST("/community/report", routes.CommunityReportHandler)

	// Alerts
	e.POST("/alerts/send-sms", routes.SendSMSHandler)
	e.GET("/alerts/recent", routes.RecentAlertsHandler)

	// Evidence retrieval
	e.GET("/evidence/:filename", routes.EvidenceHandler)
}
