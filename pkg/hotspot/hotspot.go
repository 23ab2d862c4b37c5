// Package hotspot clusters crime locations into hotspots using
// density-based clustering over haversine distances.
package hotspot

import (
	"math"

	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/geo"
)

const earthRadiusKm = 6371.0

// Point is one geo-located crime occurrence.
type Point struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	CrimeType  string  `json:"crime_type,omitempty"`
	Zone       string  `json:"zone,omitempty"`
	SourceFile string  `json:"source_file,omitempty"`
}

// Cluster is one detected hotspot.
type Cluster struct {
	ID       int       `json:"cluster_id"`
	Centroid geo.Point `json:"centroid"`
	Points   []Point   `json:"-"`
	Count    int       `json:"crime_count"`
}

// Result reports a clustering run. When fewer valid points than
// MinSamples were received, Clusters is empty and Reason says why.
type Result struct {
	TotalReceived  int       `json:"total_received"`
	ValidGeoPoints int       `json:"valid_geo_points"`
	Clusters       []Cluster `json:"hotspot_clusters"`
	Reason         string    `json:"reason,omitempty"`
}

// BuildCrimePoints projects geo-located FIRs into clustering input.
// FIRs without coordinates are skipped.
func BuildCrimePoints(firs []fir.FIR) []Point {
	points := make([]Point, 0, len(firs))
	for _, f := range firs {
		if f.Geo == nil {
			continue
		}
		points = append(points, Point{
			Lat:        f.Geo.Lat,
			Lon:        f.Geo.Lon,
			CrimeType:  f.CrimeType,
			Zone:       f.LocationText,
			SourceFile: f.SourceFile,
		})
	}
	return points
}

// DetectClusters runs DBSCAN over the points. epsKm is the neighborhood
// radius in kilometers; minSamples the minimum number of points, the
// point itself included, that makes a neighborhood dense. Points with
// out-of-range coordinates are dropped before clustering, and a run
// with too few valid points returns an empty result with a reason
// instead of failing.
func DetectClusters(points []Point, epsKm float64, minSamples int) Result {
	valid := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			continue
		}
		valid = append(valid, p)
	}

	result := Result{
		TotalReceived:  len(points),
		ValidGeoPoints: len(valid),
		Clusters:       []Cluster{},
	}

	if len(valid) < minSamples {
		result.Reason = "not enough points with valid coordinates"
		return result
	}

	labels := dbscan(valid, epsKm, minSamples)

	byLabel := make(map[int][]Point)
	order := []int{}
	for i, label := range labels {
		if label < 0 {
			continue
		}
		if _, ok := byLabel[label]; !ok {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], valid[i])
	}

	for _, label := range order {
		pts := byLabel[label]
		var latSum, lonSum float64
		for _, p := range pts {
			latSum += p.Lat
			lonSum += p.Lon
		}
		result.Clusters = append(result.Clusters, Cluster{
			ID: label,
			Centroid: geo.Point{
				Lat: latSum / float64(len(pts)),
				Lon: lonSum / float64(len(pts)),
			},
			Points: pts,
			Count:  len(pts),
		})
	}

	return result
}

const (
	labelUnvisited = -2
	labelNoise     = -1
)

func dbscan(points []Point, epsKm float64, minSamples int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = labelUnvisited
	}

	cluster := 0
	for i := range points {
		if labels[i] != labelUnvisited {
			continue
		}

		neighbors := regionQuery(points, i, epsKm)
		// The point itself counts toward the density threshold.
		if len(neighbors)+1 < minSamples {
			labels[i] = labelNoise
			continue
		}

		labels[i] = cluster
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == labelNoise {
				labels[j] = cluster
			}
			if labels[j] != labelUnvisited {
				continue
			}
			labels[j] = cluster

			jNeighbors := regionQuery(points, j, epsKm)
			if len(jNeighbors)+1 >= minSamples {
				queue = append(queue, jNeighbors...)
			}
		}
		cluster++
	}

	return labels
}

func regionQuery(points []Point, idx int, epsKm float64) []int {
	var neighbors []int
	for i := range points {
		if i == idx {
			continue
		}
		if haversineKm(points[idx], points[i]) <= epsKm {
			neighbors = append(neighbors, i)
		}
	}
	return neighbors
}

func haversineKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ZonesOverAverage returns the zones whose crime count exceeds the
// average across all zones. Points without a zone are ignored.
func ZonesOverAverage(points []Point) []string {
	counts := make(map[string]int)
	order := []string{}
	for _, p := range points {
		if p.Zone == "" {
			continue
		}
		if _, ok := counts[p.Zone]; !ok {
			order = append(order, p.Zone)
		}
		counts[p.Zone]++
	}
	if len(counts) == 0 {
		return nil
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	avg := float64(total) / float64(len(counts))

	var zones []string
	for _, zone := range order {
		if float64(counts[zone]) > avg {
			zones = append(zones, zone)
		}
	}
	return zones
}
