package sessionlog

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const insertQuery = `
	INSERT INTO session_logs (member_id, subscription_id, member_document, member_name, action, remaining_before, remaining_after, performed_by, performed_role, note)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, member_id, subscription_id, member_document, member_name, action, remaining_before, remaining_after, performed_by, performed_role, note, created_at
`

// Insert appends one entry through any sqlx executor so callers can write
// audit rows inside their own transaction.
func Insert(ctx context.Context, ext sqlx.ExtContext, e *Entry) (*Entry, error) {
	var saved Entry
	err := sqlx.GetContext(ctx, ext, &saved, insertQuery,
		e.MemberID, e.SubscriptionID, e.MemberDocument, e.MemberName, e.Action,
		e.RemainingBefore, e.RemainingAfter, e.PerformedBy, e.PerformedRole, e.Note)
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, e *Entry) (*Entry, error) {
	return Insert(ctx, r.db, e)
}

func (r *repository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, member_id, subscription_id, member_document, member_name, action, remaining_before, remaining_after, performed_by, performed_role, note, created_at
		FROM session_logs
		ORDER BY id DESC
		LIMIT $1
	`

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, query, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
