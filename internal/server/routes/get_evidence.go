package routes

import (
	"net/http"
	"path"
	"strings"

	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/internal/storage"

	"github.com/labstack/echo/v4"
)

// EvidenceHandler redirects to a short-lived presigned link for one
// stored evidence frame.
func EvidenceHandler(c echo.Context) error {
	type errorResponse struct {
		Message string `json:"message"`
	}

	filename := c.Param("filename")
	if filename == "" || filename != path.Base(filename) || strings.HasPrefix(filename, ".") {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Message: "Invalid filename",
		})
	}

	app := c.(*middleware.AppContext).App
	key := storage.EvidencePrefix + "/" + filename

	link, err := storage.GenerateDownloadLink(c.Request().Context(), app.S3, key)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{
			Message: "Evidence not found",
		})
	}

	return c.Redirect(http.StatusTemporaryRedirect, link)
}
