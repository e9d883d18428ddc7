package repository

import (
	"context"

	"jamjournal/internal/db"
	"jamjournal/internal/models"
)

// VisitRepo: журнал посещений. Только дописывание, агрегаты считает Postgres.
type VisitRepo struct {
	db db.PgxIface
}

func NewVisitRepo(pool db.PgxIface) *VisitRepo { return &VisitRepo{db: pool} }

const (
	insertVisitQuery = `INSERT INTO visits (ip, user_agent, visited_at) VALUES ($1, $2, NOW())`
	// порядок групп по первому появлению пары, чтобы равные счётчики сортировались стабильно
	tallyVisitsQuery = `
		SELECT ip, user_agent, COUNT(*) AS hits
		FROM visits
		GROUP BY ip, user_agent
		ORDER BY MIN(id)`
	countVisitsQuery = `SELECT COUNT(*) FROM visits`
)

// Record пишет одну строку; пустые ip/user_agent сохраняются как есть.
func (r *VisitRepo) Record(ctx context.Context, ip, userAgent string) error {
	_, err := r.db.Exec(ctx, insertVisitQuery, ip, userAgent)
	return storeErr("record visit", err)
}

func (r *VisitRepo) Tally(ctx context.Context) ([]models.VisitTally, error) {
	rows, err := r.db.Query(ctx, tallyVisitsQuery)
	if err != nil {
		return nil, storeErr("tally visits", err)
	}
	defer rows.Close()

	out := []models.VisitTally{}
	for rows.Next() {
		var t models.VisitTally
		if err := rows.Scan(&t.IP, &t.UserAgent, &t.Hits); err != nil {
			return nil, storeErr("tally visits", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("tally visits", err)
	}
	return out, nil
}

func (r *VisitRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countVisitsQuery).Scan(&n); err != nil {
		return 0, storeErr("count visits", err)
	}
	return n, nil
}
