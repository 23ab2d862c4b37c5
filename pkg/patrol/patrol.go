// Package patrol derives patrol schedules and unit deployment
// recommendations from processed FIRs.
package patrol

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nyayarakshak/backend/pkg/fir"
)

const (
	maxScheduleEntries = 5
	maxCameraResults   = 3
)

// ScheduleEntry is one recommended patrol slot.
type ScheduleEntry struct {
	Sector          string `json:"sector"`
	TimeSlot        string `json:"time_slot"`
	Reason          string `json:"reason"`
	RecommendedUnit string `json:"recommended_unit"`
}

// Recommendation is one unit deployment suggestion for a zone with
// repeated incidents.
type Recommendation struct {
	Zone             string   `json:"zone"`
	RecommendedUnits []string `json:"recommended_units"`
	Priority         string   `json:"priority"`
}

// Schedule builds the evening patrol schedule from pending FIRs,
// capped at the top entries.
func Schedule(firs []fir.FIR) []ScheduleEntry {
	schedule := []ScheduleEntry{}
	for _, f := range firs {
		if f.Status != fir.StatusPending {
			continue
		}
		schedule = append(schedule, ScheduleEntry{
			Sector:          f.LocationText,
			TimeSlot:        "18:00 - 22:00",
			Reason:          f.CrimeType,
			RecommendedUnit: "Beat Marshall",
		})
		if len(schedule) == maxScheduleEntries {
			break
		}
	}
	return schedule
}

// Recommendations buckets geo-located FIRs into rounded-coordinate
// zones and recommends a PCR van wherever a zone saw repeat incidents.
func Recommendations(firs []fir.FIR) []Recommendation {
	counts := make(map[string]int)
	order := []string{}
	for _, f := range firs {
		if f.Geo == nil {
			continue
		}
		key := fmt.Sprintf("%.3f-%.3f", f.Geo.Lat, f.Geo.Lon)
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}

	recommendations := []Recommendation{}
	for _, zone := range order {
		if counts[zone] < 2 {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Zone:             zone,
			RecommendedUnits: []string{"PCR Van"},
			Priority:         "High",
		})
	}
	return recommendations
}

// Camera is one CCTV unit considered for evidence retrieval, with the
// hour of day its footage window covers.
type Camera struct {
	ID       string `json:"id,omitempty"`
	Location string `json:"location,omitempty"`
	Time     int    `json:"time"`
}

// RecommendCameras ranks cameras by how close their footage hour is to
// the crime hour and returns the closest few. Ties keep input order.
func RecommendCameras(crimeTime int, cameras []Camera) []Camera {
	ranked := append([]Camera(nil), cameras...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return hourDistance(ranked[i].Time, crimeTime) < hourDistance(ranked[j].Time, crimeTime)
	})
	if len(ranked) > maxCameraResults {
		ranked = ranked[:maxCameraResults]
	}
	return ranked
}

func hourDistance(a, b int) int {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// BaseDeployment returns the baseline unit count for a risk score.
func BaseDeployment(risk float64) int {
	switch {
	case risk > 0.8:
		return 5
	case risk > 0.5:
		return 3
	}
	return 1
}

var eventMultipliers = map[string]float64{
	"ganpati":  1.4,
	"election": 1.6,
	"new_year": 1.3,
}

// EventMultiplier scales deployment for known large public events.
// Unknown events leave the deployment unchanged.
func EventMultiplier(event string) float64 {
	if m, ok := eventMultipliers[strings.ToLower(event)]; ok {
		return m
	}
	return 1.0
}
