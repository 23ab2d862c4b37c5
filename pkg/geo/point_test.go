package geo

import (
	"math"
	"testing"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Point
		wantErr bool
	}{
		{
			name: "proper json",
			raw:  `{"lat": 19.0760, "lon": 72.8777}`,
			want: Point{Lat: 19.0760, Lon: 72.8777},
		},
		{
			name: "legacy python dict",
			raw:  `{'lat': 19.07, 'lon': 72.87}`,
			want: Point{Lat: 19.07, Lon: 72.87},
		},
		{
			name: "negative coordinates",
			raw:  `{"lat": -33.86, "lon": 151.20}`,
			want: Point{Lat: -33.86, Lon: 151.20},
		},
		{
			name:    "latitude out of range",
			raw:     `{"lat": 91.0, "lon": 0}`,
			wantErr: true,
		},
		{
			name:    "longitude out of range",
			raw:     `{"lat": 0, "lon": 181.0}`,
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "garbage",
			raw:     "somewhere in mumbai",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePoint(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Lat-tt.want.Lat) > 1e-9 || math.Abs(got.Lon-tt.want.Lon) > 1e-9 {
				t.Fatalf("ParsePoint(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPointValid(t *testing.T) {
	if !(Point{Lat: 90, Lon: 180}).Valid() {
		t.Error("boundary coordinates must be valid")
	}
	if (Point{Lat: -90.01, Lon: 0}).Valid() {
		t.Error("lat below range must be invalid")
	}
}
