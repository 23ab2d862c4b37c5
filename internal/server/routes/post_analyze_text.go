package routes

import (
	"io"
	"net/http"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/loader"
	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeTextHandler ingests uploaded documents synchronously: extract
// text, pull FIR fields, merge the extraction into the active case
// graph, and persist the FIR row. One bad file fails that file only.
func AnalyzeTextHandler(c echo.Context) error {
	type fileResult struct {
		Filename string             `json:"filename"`
		FIRID    string             `json:"fir_id,omitempty"`
		Status   string             `json:"status"`
		Summary  *casegraph.Summary `json:"summary,omitempty"`
	}

	type analyzeTextResponse struct {
		Message        string       `json:"message,omitempty"`
		Status         string       `json:"status,omitempty"`
		ProcessedCount int          `json:"processed_count"`
		Results        []fileResult `json:"results"`
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, analyzeTextResponse{
			Message: "Invalid multipart form",
			Results: []fileResult{},
		})
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, analyzeTextResponse{
			Message: "No files provided",
			Results: []fileResult{},
		})
	}

	caseID := c.QueryParam("case_id")
	if caseID == "" {
		caseID = casegraph.DefaultCaseID
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	queries := db.New(app.DBConn)

	results := make([]fileResult, 0, len(files))
	processed := 0

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			results = append(results, fileResult{Filename: fh.Filename, Status: "failed"})
			continue
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			results = append(results, fileResult{Filename: fh.Filename, Status: "failed"})
			continue
		}

		text, err := loader.ExtractText(ctx, fh.Filename, content)
		if err != nil {
			logger.Warn("[Analyze] Text extraction failed", "file", fh.Filename, "err", err)
			results = append(results, fileResult{Filename: fh.Filename, Status: "failed"})
			continue
		}

		firID, err := util.NewFIRID()
		if err != nil {
			results = append(results, fileResult{Filename: fh.Filename, Status: "failed"})
			continue
		}

		record := fir.Build(firID, caseID, fh.Filename, text, fir.ExtractFields(text))

		if record.Geo == nil && record.LocationText != "" {
			point, found, err := app.Geocoder.Geocode(ctx, fir.GeoQuery(record.LocationText))
			if err != nil {
				logger.Warn("[Analyze] Geocoding failed", "file", fh.Filename, "err", err)
			} else if found {
				record.Geo = &point
			}
		}

		summary, err := app.Pipeline.Ingest(ctx, caseID, firID, fir.BuildExtraction(record))
		if err != nil {
			logger.Error("[Analyze] Graph ingest failed", "file", fh.Filename, "err", err)
			results = append(results, fileResult{Filename: fh.Filename, FIRID: firID, Status: "failed"})
			continue
		}

		var geoLat, geoLon *float64
		if record.Geo != nil {
			geoLat, geoLon = &record.Geo.Lat, &record.Geo.Lon
		}

		err = queries.InsertFir(ctx, db.InsertFirParams{
			ID:             record.FIRID,
			CaseID:         record.CaseID,
			SourceFile:     record.SourceFile,
			RawText:        util.SanitizePostgresText(record.RawText),
			ComplaintText:  util.SanitizePostgresText(record.ComplaintText),
			CrimeType:      record.CrimeType,
			Sections:       record.Sections,
			FirDate:        record.Date,
			FirTime:        record.Time,
			LocationText:   record.LocationText,
			GeoLat:         geoLat,
			GeoLon:         geoLon,
			Complainant:    record.Complainant,
			Accused:        record.Accused,
			DepartmentTags: record.DepartmentTags,
			Status:         record.Status,
			Priority:       fir.ResolvePriority(record.CrimeType),
		})
		if err != nil {
			logger.Error("[Analyze] Failed to persist FIR", "file", fh.Filename, "err", err)
		}

		processed++
		results = append(results, fileResult{
			Filename: fh.Filename,
			FIRID:    firID,
			Status:   "processed",
			Summary:  &summary,
		})
	}

	return c.JSON(http.StatusOK, analyzeTextResponse{
		Status:         "batch_complete",
		ProcessedCount: processed,
		Results:        results,
	})
}
