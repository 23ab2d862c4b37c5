// Package geo provides the canonical coordinate shape and a geocoding
// client. The service emits structured {lat, lon} everywhere; the only
// place legacy python-dict geo strings are tolerated is ParsePoint,
// which repairs them once at the boundary.
package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Point is the single canonical geo shape of the API.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies in coordinate range.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// ParsePoint parses a geo value that may be proper JSON or a legacy
// python-dict string like {'lat': 19.07, 'lon': 72.87}. Legacy strings
// are repaired into JSON before decoding; anything that still fails or
// falls outside coordinate range is rejected.
func ParsePoint(raw string) (Point, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Point{}, fmt.Errorf("empty geo value")
	}

	var p Point
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return Point{}, fmt.Errorf("unparseable geo value %q: %w", raw, err)
		}
		if err := json.Unmarshal([]byte(repaired), &p); err != nil {
			return Point{}, fmt.Errorf("unparseable geo value %q: %w", raw, err)
		}
	}

	if !p.Valid() {
		return Point{}, fmt.Errorf("geo value out of range: lat=%f lon=%f", p.Lat, p.Lon)
	}
	return p, nil
}
