package patrol

import (
	"testing"

	"github.com/nyayarakshak/backend/pkg/fir"
	"github.com/nyayarakshak/backend/pkg/geo"
)

func TestSchedule(t *testing.T) {
	firs := []fir.FIR{
		{LocationText: "Kharghar", CrimeType: "Theft", Status: fir.StatusPending},
		{LocationText: "Dadar", CrimeType: "Murder", Status: fir.StatusClosed},
		{LocationText: "Vashi", CrimeType: "Assault", Status: fir.StatusPending},
	}

	schedule := Schedule(firs)

	if len(schedule) != 2 {
		t.Fatalf("got %d entries, want 2 (pending only)", len(schedule))
	}
	entry := schedule[0]
	if entry.Sector != "Kharghar" || entry.Reason != "Theft" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.TimeSlot != "18:00 - 22:00" {
		t.Errorf("TimeSlot = %q", entry.TimeSlot)
	}
	if entry.RecommendedUnit != "Beat Marshall" {
		t.Errorf("RecommendedUnit = %q", entry.RecommendedUnit)
	}
}

func TestScheduleCapped(t *testing.T) {
	firs := make([]fir.FIR, 8)
	for i := range firs {
		firs[i] = fir.FIR{LocationText: "Kharghar", CrimeType: "Theft", Status: fir.StatusPending}
	}

	if got := len(Schedule(firs)); got != 5 {
		t.Fatalf("got %d entries, want cap of 5", got)
	}
}

func TestScheduleEmpty(t *testing.T) {
	if got := Schedule(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected initialized empty schedule, got %v", got)
	}
}

func TestRecommendCameras(t *testing.T) {
	cameras := []Camera{
		{ID: "cam_1", Time: 9},
		{ID: "cam_2", Time: 21},
		{ID: "cam_3", Time: 22},
		{ID: "cam_4", Time: 2},
	}

	got := RecommendCameras(21, cameras)

	if len(got) != 3 {
		t.Fatalf("got %d cameras, want 3", len(got))
	}
	if got[0].ID != "cam_2" || got[1].ID != "cam_3" {
		t.Fatalf("unexpected ranking: %+v", got)
	}
}

func TestRecommendCamerasStableTies(t *testing.T) {
	cameras := []Camera{
		{ID: "cam_a", Time: 20},
		{ID: "cam_b", Time: 22},
	}

	got := RecommendCameras(21, cameras)

	if got[0].ID != "cam_a" || got[1].ID != "cam_b" {
		t.Fatalf("ties must keep input order: %+v", got)
	}
}

func TestRecommendCamerasFewerThanCap(t *testing.T) {
	got := RecommendCameras(12, []Camera{{ID: "cam_1", Time: 12}})
	if len(got) != 1 || got[0].ID != "cam_1" {
		t.Fatalf("got %+v", got)
	}
}

func TestRecommendations(t *testing.T) {
	repeat := &geo.Point{Lat: 19.076, Lon: 72.877}
	firs := []fir.FIR{
		{Geo: repeat},
		{Geo: &geo.Point{Lat: 19.0762, Lon: 72.8771}}, // same rounded bucket
		{Geo: &geo.Point{Lat: 18.520, Lon: 73.856}},   // single incident
		{}, // no coordinates
	}

	recs := Recommendations(firs)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Zone != "19.076-72.877" {
		t.Errorf("Zone = %q", rec.Zone)
	}
	if len(rec.RecommendedUnits) != 1 || rec.RecommendedUnits[0] != "PCR Van" {
		t.Errorf("RecommendedUnits = %v", rec.RecommendedUnits)
	}
	if rec.Priority != "High" {
		t.Errorf("Priority = %q", rec.Priority)
	}
}

func TestBaseDeployment(t *testing.T) {
	tests := []struct {
		risk float64
		want int
	}{
		{0.95, 5},
		{0.81, 5},
		{0.8, 3},
		{0.51, 3},
		{0.5, 1},
		{0.1, 1},
		{0, 1},
	}

	for _, tt := range tests {
		if got := BaseDeployment(tt.risk); got != tt.want {
			t.Errorf("BaseDeployment(%v) = %d, want %d", tt.risk, got, tt.want)
		}
	}
}

func TestEventMultiplier(t *testing.T) {
	tests := []struct {
		event string
		want  float64
	}{
		{"ganpati", 1.4},
		{"Election", 1.6},
		{"NEW_YEAR", 1.3},
		{"diwali", 1.0},
		{"", 1.0},
	}

	for _, tt := range tests {
		if got := EventMultiplier(tt.event); got != tt.want {
			t.Errorf("EventMultiplier(%q) = %v, want %v", tt.event, got, tt.want)
		}
	}
}
