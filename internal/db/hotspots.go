package db

import "context"

const deleteHotspotClustersSQL = `
DELETE FROM hotspot_clusters;
`

const insertHotspotClusterSQL = `
INSERT INTO hotspot_clusters (run_id, cluster_id, centroid_lat, centroid_lon, crime_count)
VALUES ($1, $2, $3, $4, $5);
`

type InsertHotspotClusterParams struct {
	RunID       string
	ClusterID   int32
	CentroidLat float64
	CentroidLon float64
	CrimeCount  int32
}

// ReplaceHotspotClusters swaps the persisted clusters for the results
// of a new refresh run. Callers run it inside a transaction so the
// dashboard never observes a half-written refresh.
func (q *Queries) ReplaceHotspotClusters(ctx context.Context, clusters []InsertHotspotClusterParams) error {
	if _, err := q.db.Exec(ctx, deleteHotspotClustersSQL); err != nil {
		return err
	}
	for _, cluster := range clusters {
		_, err := q.db.Exec(ctx, insertHotspotClusterSQL,
			cluster.RunID, cluster.ClusterID, cluster.CentroidLat,
			cluster.CentroidLon, cluster.CrimeCount,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

const listHotspotClustersSQL = `
SELECT id, run_id, cluster_id, centroid_lat, centroid_lon, crime_count, created_at
FROM hotspot_clusters
ORDER BY crime_count DESC;
`

func (q *Queries) ListHotspotClusters(ctx context.Context) ([]HotspotCluster, error) {
	rows, err := q.db.Query(ctx, listHotspotClustersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clusters []HotspotCluster
	for rows.Next() {
		var c HotspotCluster
		if err := rows.Scan(
			&c.ID, &c.RunID, &c.ClusterID, &c.CentroidLat, &c.CentroidLon,
			&c.CrimeCount, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		clusters = append(clusters, c)
	}
	return clusters, rows.Err()
}

const countHotspotClustersSQL = `
SELECT count(*) FROM hotspot_clusters;
`

func (q *Queries) CountHotspotClusters(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countHotspotClustersSQL).Scan(&count)
	return count, err
}
