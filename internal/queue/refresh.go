package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nyayarakshak/backend/internal/db"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/geo"
	"github.com/nyayarakshak/backend/pkg/hotspot"
	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Clustering defaults, tuned for dense urban incident data.
// HOTSPOT_EPS_KM and HOTSPOT_MIN_SAMPLES override them per deployment.
const (
	defaultEpsKm      = 0.5
	defaultMinSamples = 3
)

// ProcessRefresh recomputes hotspot clusters from every stored FIR and
// swaps the persisted cluster set in one transaction.
func ProcessRefresh(ctx context.Context, conn *pgxpool.Pool, body string) error {
	var msg RefreshMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("unmarshal refresh message: %w", err)
	}

	q := db.New(conn)
	rows, err := q.ListFirs(ctx)
	if err != nil {
		return fmt.Errorf("list firs: %w", err)
	}

	firs := make([]fir.FIR, 0, len(rows))
	for _, row := range rows {
		record := fir.FIR{
			FIRID:        row.ID,
			CaseID:       row.CaseID,
			SourceFile:   row.SourceFile,
			CrimeType:    row.CrimeType,
			LocationText: row.LocationText,
			Status:       row.Status,
		}
		if row.GeoLat != nil && row.GeoLon != nil {
			record.Geo = &geo.Point{Lat: *row.GeoLat, Lon: *row.GeoLon}
		}
		firs = append(firs, record)
	}

	epsKm := util.GetEnvNumeric("HOTSPOT_EPS_KM", 0)
	if epsKm <= 0 {
		epsKm = defaultEpsKm
	}
	minSamples := int(util.GetEnvNumeric("HOTSPOT_MIN_SAMPLES", defaultMinSamples))

	points := hotspot.BuildCrimePoints(firs)
	result := hotspot.DetectClusters(points, epsKm, minSamples)
	if result.Reason != "" {
		logger.Info("[Refresh] Skipping hotspot update",
			"trigger", msg.Trigger,
			"reason", result.Reason,
			"valid_points", result.ValidGeoPoints,
		)
		return nil
	}

	runID, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	clusters := make([]db.InsertHotspotClusterParams, 0, len(result.Clusters))
	for _, cluster := range result.Clusters {
		clusters = append(clusters, db.InsertHotspotClusterParams{
			RunID:       runID,
			ClusterID:   int32(cluster.ID),
			CentroidLat: cluster.Centroid.Lat,
			CentroidLon: cluster.Centroid.Lon,
			CrimeCount:  int32(cluster.Count),
		})
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin refresh transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := q.WithTx(tx).ReplaceHotspotClusters(ctx, clusters); err != nil {
		return fmt.Errorf("replace hotspot clusters: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit hotspot refresh: %w", err)
	}

	logger.Info("[Refresh] Hotspot clusters updated",
		"trigger", msg.Trigger,
		"run_id", runID,
		"clusters", len(clusters),
		"points", result.ValidGeoPoints,
	)
	if busy := hotspot.ZonesOverAverage(points); len(busy) > 0 {
		logger.Info("[Refresh] Zones over average activity", "zones", strings.Join(busy, ", "))
	}
	return nil
}
