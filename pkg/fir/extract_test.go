package fir

import (
	"reflect"
	"testing"
)

const sampleFIRText = `FIRST INFORMATION REPORT
FIR No: 113/2024
Crime Type: Theft
Location: Sector 14, Kharghar
Date: 12/03/2024
Time: 21:30
Sections: IPC 379
Complainant Name: Ramesh Patil
Accused Name: Unknown Person
Complaint: My wallet was stolen near the railway station while boarding the train.
Statement read over and admitted to be true
Signature of Complainant`

func TestExtractFields(t *testing.T) {
	fields := ExtractFields(sampleFIRText)

	if fields.CrimeType != "Theft" {
		t.Errorf("CrimeType = %q, want Theft", fields.CrimeType)
	}
	if fields.Location != "Sector 14, Kharghar" {
		t.Errorf("Location = %q", fields.Location)
	}
	if fields.Date != "12/03/2024" {
		t.Errorf("Date = %q", fields.Date)
	}
	if fields.Time != "21:30" {
		t.Errorf("Time = %q", fields.Time)
	}
	if fields.Sections != "IPC 379" {
		t.Errorf("Sections = %q", fields.Sections)
	}
	if fields.Complainant != "Ramesh Patil" {
		t.Errorf("Complainant = %q", fields.Complainant)
	}
	if fields.Accused != "Unknown Person" {
		t.Errorf("Accused = %q", fields.Accused)
	}
	if fields.Complaint != "My wallet was stolen near the railway station while boarding the train." {
		t.Errorf("Complaint = %q", fields.Complaint)
	}
}

func TestExtractFieldsComplaintFallback(t *testing.T) {
	text := "Someone broke the shop lock\nand took the cash box."
	fields := ExtractFields(text)
	if fields.Complaint != "Someone broke the shop lock and took the cash box." {
		t.Errorf("Complaint = %q", fields.Complaint)
	}
}

func TestResolveCrimeType(t *testing.T) {
	tests := []struct {
		name      string
		extracted string
		sections  string
		complaint string
		want      string
	}{
		{name: "extracted value wins", extracted: "Robbery", sections: "IPC 302", complaint: "wallet stolen", want: "Robbery"},
		{name: "section 302", sections: "IPC 302, 34", want: "Murder"},
		{name: "section 379", sections: "379", want: "Theft"},
		{name: "section 279", sections: "IPC 279", want: "Road Accident"},
		{name: "keyword stolen", complaint: "My wallet was stolen at the market", want: "Theft"},
		{name: "keyword killed", complaint: "The victim was killed last night", want: "Murder"},
		{name: "keyword congestion", complaint: "Heavy congestion blocked the road", want: "Traffic Obstruction"},
		{name: "nothing matches", complaint: "A strange noise was reported", want: CrimeTypeUnknown},
		{name: "all empty", want: CrimeTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCrimeType(tt.extracted, tt.sections, tt.complaint)
			if got != tt.want {
				t.Fatalf("ResolveCrimeType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyDepartments(t *testing.T) {
	tests := []struct {
		crimeType string
		want      []string
	}{
		{"Murder", []string{"law_order", "crime_branch"}},
		{"Cheating / Fraud", []string{"law_order", "crime_branch"}},
		{"Traffic Obstruction", []string{"traffic"}},
		{"Road Accident", []string{"traffic"}},
		{"Theft", []string{"law_order"}},
		{"Unknown", []string{"law_order"}},
	}

	for _, tt := range tests {
		t.Run(tt.crimeType, func(t *testing.T) {
			got := ClassifyDepartments(tt.crimeType)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ClassifyDepartments(%q) = %v, want %v", tt.crimeType, got, tt.want)
			}
		})
	}
}

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		crimeType string
		want      string
	}{
		{"Murder", "High"},
		{"murder", "High"},
		{"Sexual Harassment", "High"},
		{"Theft", "Medium"},
		{"Cheating / Fraud", "Medium"},
		{"Traffic Obstruction", "Low"},
		{"Unknown", "Low"},
		{"", "Low"},
	}

	for _, tt := range tests {
		t.Run(tt.crimeType, func(t *testing.T) {
			if got := ResolvePriority(tt.crimeType); got != tt.want {
				t.Fatalf("ResolvePriority(%q) = %q, want %q", tt.crimeType, got, tt.want)
			}
		})
	}
}

func TestBuildParsesAnnotatedGeo(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantNil  bool
		lat, lon float64
	}{
		{name: "json", line: `Geo: {"lat": 19.07, "lon": 72.87}`, lat: 19.07, lon: 72.87},
		{name: "legacy python dict", line: "Geo: {'lat': 19.033, 'lon': 73.0297}", lat: 19.033, lon: 73.0297},
		{name: "out of range dropped", line: "Geo: {'lat': 95.0, 'lon': 72.87}", wantNil: true},
		{name: "garbage dropped", line: "Geo: somewhere east of the station", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := sampleFIRText + "\n" + tt.line
			f := Build("fir_geo1", "default", "fir113.pdf", text, ExtractFields(text))

			if tt.wantNil {
				if f.Geo != nil {
					t.Fatalf("Geo = %+v, want nil", f.Geo)
				}
				// The location text survives so the record can still
				// be geocoded.
				if f.LocationText != "Sector 14, Kharghar" {
					t.Errorf("LocationText = %q", f.LocationText)
				}
				return
			}
			if f.Geo == nil {
				t.Fatal("Geo not parsed from annotated value")
			}
			if f.Geo.Lat != tt.lat || f.Geo.Lon != tt.lon {
				t.Errorf("Geo = %+v, want {%v %v}", f.Geo, tt.lat, tt.lon)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	fields := ExtractFields(sampleFIRText)
	f := Build("fir_abc123", "default", "fir113.pdf", sampleFIRText, fields)

	if f.FIRID != "fir_abc123" || f.CaseID != "default" {
		t.Fatalf("ids not carried: %+v", f)
	}
	if f.CrimeType != "Theft" {
		t.Errorf("CrimeType = %q", f.CrimeType)
	}
	if f.Status != StatusPending {
		t.Errorf("Status = %q, want %q", f.Status, StatusPending)
	}
	if !reflect.DeepEqual(f.DepartmentTags, []string{"law_order"}) {
		t.Errorf("DepartmentTags = %v", f.DepartmentTags)
	}
}
