package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/internal/storage"
	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

var detectorHTTPClient = &http.Client{Timeout: 10 * time.Minute}

type detectedEvent struct {
	Event      string `json:"event"`
	TimeWindow string `json:"time_window"`
	LLMReport  string `json:"llm_report"`
}

type detectorResponse struct {
	Status         string          `json:"status"`
	EventsDetected []detectedEvent `json:"events_detected"`
	EvidenceFiles  []string        `json:"evidence_files"`
}

// AnalyzeVideoHandler relays an uploaded CCTV clip (plus optional
// suspect reference image) to the external detector service, archives
// the returned evidence frames to S3, and merges the detected events
// into the case graph.
func AnalyzeVideoHandler(c echo.Context) error {
	type analyzeResponse struct {
		Message        string          `json:"message,omitempty"`
		Status         string          `json:"status,omitempty"`
		EventsDetected []detectedEvent `json:"events_detected"`
		EvidenceFiles  []string        `json:"evidence_files"`
	}

	video, err := c.FormFile("cctv_video")
	if err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message:        "Missing cctv_video upload",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}

	app := c.(*middleware.AppContext).App
	if app.DetectorURL == "" {
		return c.JSON(http.StatusServiceUnavailable, analyzeResponse{
			Message:        "Video analysis is not configured",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}

	caseID := c.QueryParam("case_id")
	if caseID == "" {
		caseID = casegraph.DefaultCaseID
	}

	ctx := c.Request().Context()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := copyFormFile(writer, "cctv_video", video); err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message:        "Failed to read upload",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}
	if ref, err := c.FormFile("criminal_img"); err == nil {
		if err := copyFormFile(writer, "criminal_img", ref); err != nil {
			return c.JSON(http.StatusInternalServerError, analyzeResponse{
				Message:        "Failed to read upload",
				EventsDetected: []detectedEvent{},
				EvidenceFiles:  []string{},
			})
		}
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(app.DetectorURL, "/")+"/analyze/", &body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message:        "Internal server error",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := detectorHTTPClient.Do(req)
	if err != nil {
		logger.Error("[Analyze] Detector request failed", "err", err)
		return c.JSON(http.StatusBadGateway, analyzeResponse{
			Message:        "Video analysis service unavailable",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Error("[Analyze] Detector returned error", "status", resp.StatusCode)
		return c.JSON(http.StatusBadGateway, analyzeResponse{
			Message:        "Video analysis failed",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}

	var detected detectorResponse
	if err := json.NewDecoder(resp.Body).Decode(&detected); err != nil {
		return c.JSON(http.StatusBadGateway, analyzeResponse{
			Message:        "Unreadable detector response",
			EventsDetected: []detectedEvent{},
			EvidenceFiles:  []string{},
		})
	}

	archiveEvidence(ctx, app, detected.EvidenceFiles)

	sourceID := fmt.Sprintf("video_%s", video.Filename)
	if summary, err := app.Pipeline.Ingest(ctx, caseID, sourceID, buildVideoExtraction(video.Filename, detected.EventsDetected)); err != nil {
		logger.Error("[Analyze] Graph ingest failed", "source", sourceID, "err", err)
	} else {
		logger.Info("[Analyze] Video events merged into case graph",
			"case_id", caseID,
			"nodes_added", summary.NodesAdded,
			"edges_added", summary.EdgesAdded,
		)
	}

	if detected.EventsDetected == nil {
		detected.EventsDetected = []detectedEvent{}
	}
	if detected.EvidenceFiles == nil {
		detected.EvidenceFiles = []string{}
	}
	return c.JSON(http.StatusOK, analyzeResponse{
		Status:         detected.Status,
		EventsDetected: detected.EventsDetected,
		EvidenceFiles:  detected.EvidenceFiles,
	})
}

func copyFormFile(writer *multipart.Writer, field string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	part, err := writer.CreateFormFile(field, fh.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

// archiveEvidence copies the detector's evidence frames into S3 so
// they outlive the detector's scratch directory. Frames transfer
// concurrently; failures are logged, not fatal.
func archiveEvidence(ctx context.Context, app *middleware.App, files []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, name := range files {
		g.Go(func() error {
			url := strings.TrimSuffix(app.DetectorURL, "/") + "/evidence/" + name
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil
			}
			resp, err := detectorHTTPClient.Do(req)
			if err != nil || resp.StatusCode != http.StatusOK {
				if resp != nil {
					resp.Body.Close()
				}
				logger.Warn("[Analyze] Failed to fetch evidence frame", "file", name)
				return nil
			}
			content, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil
			}

			if _, err := storage.PutFile(ctx, app.S3, storage.EvidencePrefix, name, trimExt(name), bytes.NewReader(content)); err != nil {
				logger.Warn("[Analyze] Failed to archive evidence frame", "file", name, "err", err)
			}
			return nil
		})
	}

	_ = g.Wait()
}

func trimExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

// buildVideoExtraction turns detector events into graph mentions: one
// video_source node plus an event node per detection, linked with
// detected_in edges.
func buildVideoExtraction(videoName string, events []detectedEvent) casegraph.ExtractionResult {
	var result casegraph.ExtractionResult

	result.Mentions = append(result.Mentions, casegraph.Mention{
		Type:  casegraph.NodeTypeVideoSource,
		Label: videoName,
	})

	for _, event := range events {
		result.Mentions = append(result.Mentions, casegraph.Mention{
			Type:  casegraph.NodeTypeEvent,
			Label: event.Event,
		})
		result.Relations = append(result.Relations, casegraph.Relation{
			FromType: casegraph.NodeTypeEvent, FromLabel: event.Event,
			ToType: casegraph.NodeTypeVideoSource, ToLabel: videoName,
			Label: "detected_in",
		})
	}

	return result
}
