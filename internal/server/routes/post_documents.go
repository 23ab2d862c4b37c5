package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/nyayarakshak/backend/internal/queue"
	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/internal/storage"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UploadDocumentsHandler accepts a batch of FIR documents, stores the
// originals in S3, and enqueues one ingest job per file. Processing is
// asynchronous; clients poll the dashboard for results.
func UploadDocumentsHandler(c echo.Context) error {
	type acceptedFile struct {
		Filename string `json:"filename"`
		FIRID    string `json:"fir_id"`
	}

	type uploadResponse struct {
		Message  string         `json:"message"`
		Accepted []acceptedFile `json:"accepted"`
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message:  "Invalid multipart form",
			Accepted: []acceptedFile{},
		})
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message:  "No files provided",
			Accepted: []acceptedFile{},
		})
	}

	caseID := c.QueryParam("case_id")
	if caseID == "" {
		caseID = casegraph.DefaultCaseID
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	accepted := make([]acceptedFile, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			logger.Warn("[Documents] Failed to open upload", "file", fh.Filename, "err", err)
			continue
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			logger.Warn("[Documents] Failed to read upload", "file", fh.Filename, "err", err)
			continue
		}

		firID, err := util.NewFIRID()
		if err != nil {
			logger.Error("[Documents] Failed to generate FIR id", "err", err)
			continue
		}

		key, err := storage.PutFile(ctx, app.S3, storage.DocumentPrefix, fh.Filename, firID, bytes.NewReader(content))
		if err != nil {
			logger.Error("[Documents] Failed to store upload", "file", fh.Filename, "err", err)
			continue
		}

		msg, err := json.Marshal(queue.IngestDocumentMsg{
			FIRID:     firID,
			CaseID:    caseID,
			ObjectKey: key,
			FileName:  fh.Filename,
		})
		if err != nil {
			continue
		}
		if err := queue.PublishFIFO(app.Queue, queue.IngestQueue, msg); err != nil {
			logger.Error("[Documents] Failed to enqueue ingest", "file", fh.Filename, "err", err)
			// No job will ever pick the object up, so drop it.
			if delErr := storage.DeleteFile(ctx, app.S3, key); delErr != nil {
				logger.Warn("[Documents] Failed to remove orphaned upload", "key", key, "err", delErr)
			}
			continue
		}

		accepted = append(accepted, acceptedFile{Filename: fh.Filename, FIRID: firID})
	}

	if len(accepted) == 0 {
		return c.JSON(http.StatusInternalServerError, uploadResponse{
			Message:  "No files accepted",
			Accepted: accepted,
		})
	}

	return c.JSON(http.StatusAccepted, uploadResponse{
		Message:  "Documents queued for processing",
		Accepted: accepted,
	})
}
