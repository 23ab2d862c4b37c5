package db

import "context"

const insertAlertSQL = `
INSERT INTO alerts (id, phone, zone, crime_type, risk, event, message)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`

type InsertAlertParams struct {
	ID        string
	Phone     string
	Zone      string
	CrimeType string
	Risk      float64
	Event     string
	Message   string
}

func (q *Queries) InsertAlert(ctx context.Context, arg InsertAlertParams) error {
	_, err := q.db.Exec(ctx, insertAlertSQL,
		arg.ID, arg.Phone, arg.Zone, arg.CrimeType, arg.Risk, arg.Event, arg.Message,
	)
	return err
}

const listAlertsSQL = `
SELECT id, phone, zone, crime_type, risk, event, message, created_at
FROM alerts
ORDER BY created_at DESC
LIMIT $1;
`

func (q *Queries) ListAlerts(ctx context.Context, limit int32) ([]Alert, error) {
	rows, err := q.db.Query(ctx, listAlertsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(
			&a.ID, &a.Phone, &a.Zone, &a.CrimeType, &a.Risk, &a.Event,
			&a.Message, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
