package analytics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type monthCount struct {
	Month string `db:"month"`
	Count int    `db:"count"`
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) MonthlyMemberCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at), 'MM/YYYY') AS month, COUNT(*) AS count
		FROM members
		WHERE created_at >= $1
		GROUP BY 1
	`

	return r.countByMonth(ctx, query, since)
}

func (r *repository) MonthlySessionCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at), 'MM/YYYY') AS month, COUNT(*) AS count
		FROM session_logs
		WHERE action = 'session_discount' AND created_at >= $1
		GROUP BY 1
	`

	return r.countByMonth(ctx, query, since)
}

func (r *repository) countByMonth(ctx context.Context, query string, since time.Time) (map[string]int, error) {
	var rows []monthCount
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Month] = row.Count
	}

	return counts, nil
}
