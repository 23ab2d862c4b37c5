package db

import (
	"context"
)

const insertFirSQL = `
INSERT INTO firs (
	id, case_id, source_file, raw_text, complaint_text, crime_type,
	sections, fir_date, fir_time, location_text, geo_lat, geo_lon,
	complainant, accused, department_tags, status, priority
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (id) DO NOTHING;
`

type InsertFirParams struct {
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
}

func (q *Queries) InsertFir(ctx context.Context, arg InsertFirParams) error {
	_, err := q.db.Exec(ctx, insertFirSQL,
		arg.ID, arg.CaseID, arg.SourceFile, arg.RawText, arg.ComplaintText,
		arg.CrimeType, arg.Sections, arg.FirDate, arg.FirTime,
		arg.LocationText, arg.GeoLat, arg.GeoLon, arg.Complainant,
		arg.Accused, arg.DepartmentTags, arg.Status, arg.Priority,
	)
	return err
}

const listFirsSQL = `
SELECT id, case_id, source_file, raw_text, complaint_text, crime_type,
       sections, fir_date, fir_time, location_text, geo_lat, geo_lon,
       complainant, accused, department_tags, status, priority, created_at
FROM firs
ORDER BY created_at DESC;
`

func (q *Queries) ListFirs(ctx context.Context) ([]Fir, error) {
	rows, err := q.db.Query(ctx, listFirsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var firs []Fir
	for rows.Next() {
		var f Fir
		if err := rows.Scan(
			&f.ID, &f.CaseID, &f.SourceFile, &f.RawText, &f.ComplaintText,
			&f.CrimeType, &f.Sections, &f.FirDate, &f.FirTime,
			&f.LocationText, &f.GeoLat, &f.GeoLon, &f.Complainant,
			&f.Accused, &f.DepartmentTags, &f.Status, &f.Priority, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		firs = append(firs, f)
	}
	return firs, rows.Err()
}

const listRecentFirsSQL = `
SELECT id, case_id, source_file, raw_text, complaint_text, crime_type,
       sections, fir_date, fir_time, location_text, geo_lat, geo_lon,
       complainant, accused, department_tags, status, priority, created_at
FROM firs
ORDER BY created_at DESC
LIMIT $1;
`

func (q *Queries) ListRecentFirs(ctx context.Context, limit int32) ([]Fir, error) {
	rows, err := q.db.Query(ctx, listRecentFirsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var firs []Fir
	for rows.Next() {
		var f Fir
		if err := rows.Scan(
			&f.ID, &f.CaseID, &f.SourceFile, &f.RawText, &f.ComplaintText,
			&f.CrimeType, &f.Sections, &f.FirDate, &f.FirTime,
			&f.LocationText, &f.GeoLat, &f.GeoLon, &f.Complainant,
			&f.Accused, &f.DepartmentTags, &f.Status, &f.Priority, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		firs = append(firs, f)
	}
	return firs, rows.Err()
}

const countFirsByCrimeTypeSQL = `
SELECT crime_type, count(*)
FROM firs
GROUP BY crime_type
ORDER BY count(*) DESC;
`

type CrimeTypeCount struct {
	CrimeType string
	Count     int64
}

func (q *Queries) CountFirsByCrimeType(ctx context.Context) ([]CrimeTypeCount, error) {
	rows, err := q.db.Query(ctx, countFirsByCrimeTypeSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CrimeTypeCount
	for rows.Next() {
		var c CrimeTypeCount
		if err := rows.Scan(&c.CrimeType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

const countFirsSQL = `
SELECT count(*) FROM firs;
`

func (q *Queries) CountFirs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countFirsSQL).Scan(&count)
	return count, err
}
