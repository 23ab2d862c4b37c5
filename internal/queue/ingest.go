package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/storage"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/geo"
	"github.com/nyayarakshak/backend/pkg/loader"
	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
)

// ProcessIngest handles one ingest_queue message: download the stored
// document, extract and classify FIR fields, geocode the location when
// the document carried no coordinates, persist the FIR row, and merge
// the extraction into the case graph.
// Graph writes are idempotent, so a redelivered message converges to
// the same graph.
func ProcessIngest(
	ctx context.Context,
	s3Client *s3.Client,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	pipeline *casegraph.Pipeline,
	geocoder geo.Geocoder,
	body string,
) error {
	var msg IngestDocumentMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("unmarshal ingest message: %w", err)
	}
	if msg.FIRID == "" || msg.ObjectKey == "" {
		return fmt.Errorf("ingest message missing fir id or object key")
	}
	if msg.CaseID == "" {
		msg.CaseID = casegraph.DefaultCaseID
	}

	content, err := storage.GetFile(ctx, s3Client, msg.ObjectKey)
	if err != nil {
		return fmt.Errorf("fetch document %s: %w", msg.ObjectKey, err)
	}

	text, err := loader.ExtractText(ctx, msg.FileName, content)
	if err != nil {
		return fmt.Errorf("extract document text: %w", err)
	}

	fields := fir.ExtractFields(text)
	record := fir.Build(msg.FIRID, msg.CaseID, msg.FileName, text, fields)

	if record.Geo == nil && record.LocationText != "" {
		type located struct {
			point geo.Point
			found bool
		}
		result, err := util.RetryWithContext(ctx, 3, func(ctx context.Context) (located, error) {
			p, ok, err := geocoder.Geocode(ctx, fir.GeoQuery(record.LocationText))
			if err != nil {
				return located{}, err
			}
			return located{point: p, found: ok}, nil
		})
		switch {
		case err != nil:
			logger.Warn("[Ingest] Geocoding failed, storing FIR without coordinates",
				"fir_id", msg.FIRID, "location", record.LocationText, "err", err)
		case result.found:
			record.Geo = &result.point
		}
	}

	var geoLat, geoLon *float64
	if record.Geo != nil {
		geoLat, geoLon = &record.Geo.Lat, &record.Geo.Lon
	}

	q := db.New(conn)
	err = q.InsertFir(ctx, db.InsertFirParams{
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
		return fmt.Errorf("persist fir %s: %w", record.FIRID, err)
	}

	summary, err := pipeline.Ingest(ctx, record.CaseID, record.FIRID, fir.BuildExtraction(record))
	if err != nil {
		return fmt.Errorf("graph ingest for %s: %w", record.FIRID, err)
	}

	logger.Info("[Ingest] Document processed",
		"fir_id", record.FIRID,
		"case_id", record.CaseID,
		"crime_type", record.CrimeType,
		"nodes_added", summary.NodesAdded,
		"nodes_merged", summary.NodesMerged,
		"edges_added", summary.EdgesAdded,
		"edges_merged", summary.EdgesMerged,
		"dangling", len(summary.Dangling),
	)

	refresh, err := json.Marshal(RefreshMsg{Trigger: "ingest:" + record.FIRID})
	if err == nil {
		if err := PublishFIFO(ch, RefreshQueue, refresh); err != nil {
			logger.Warn("[Ingest] Failed to enqueue hotspot refresh", "err", err)
		}
	}

	return nil
}
