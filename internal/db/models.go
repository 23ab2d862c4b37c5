package db

import "time"

// Fir is the relational row for a processed FIR.
type Fir struct {
	ID             string
	CaseID         string
	SourceFile     string
	RawText        string
	ComplaintText  string
	CrimeType      string
	Sections       string
	FirDate        string
	FirTime        string
	LocationText   string
	GeoLat         *float64
	GeoLon         *float64
	Complainant    string
	Accused        string
	DepartmentTags []string
	Status         string
	Priority       string
	CreatedAt      time.Time
}

// Alert is one delivered safety alert.
type Alert struct {
	ID        string
	Phone     string
	Zone      string
	CrimeType string
	Risk      float64
	Event     string
	Message   string
	CreatedAt time.Time
}

// HotspotCluster is one persisted cluster from the latest refresh run.
type HotspotCluster struct {
	ID          int64
	RunID       string
	ClusterID   int32
	CentroidLat float64
	CentroidLon float64
	CrimeCount  int32
	CreatedAt   time.Time
}
