package plan

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// foreignKeyViolation is the postgres error code raised when a delete
// breaks a reference from subscriptions. Kept as a backstop behind the
// explicit IsReferenced check.
const foreignKeyViolation = "23503"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, sessionsPerCycle int, priceCents int64) (*Plan, error) {
	query := `
		INSERT INTO plans (name, sessions_per_cycle, price_cents, active)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, sessions_per_cycle, price_cents, active, created_at, updated_at
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, name, sessionsPerCycle, priceCents)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int, name string, sessionsPerCycle int, priceCents int64) (*Plan, error) {
	query := `
		UPDATE plans
		SET name = $2, sessions_per_cycle = $3, price_cents = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, sessions_per_cycle, price_cents, active, created_at, updated_at
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id, name, sessionsPerCycle, priceCents)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ToggleActive(ctx context.Context, id int) (*Plan, error) {
	query := `
		UPDATE plans
		SET active = NOT active, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, sessions_per_cycle, price_cents, active, created_at, updated_at
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == foreignKeyViolation {
			return ErrPlanInUse
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func (r *repository) ListActive(ctx context.Context) ([]Plan, error) {
	query := `
		SELECT id, name, sessions_per_cycle, price_cents, active, created_at, updated_at
		FROM plans
		WHERE active = true
		ORDER BY id ASC
	`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Plan, error) {
	query := `
		SELECT id, name, sessions_per_cycle, price_cents, active, created_at, updated_at
		FROM plans
		WHERE id = $1
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) IsReferenced(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE plan_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, err
	}

	return exists, nil
}
