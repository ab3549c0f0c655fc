package plan

import "context"

type Repository interface {
	Create(ctx context.Context, name string, sessionsPerCycle int, priceCents int64) (*Plan, error)
	Update(ctx context.Context, id int, name string, sessionsPerCycle int, priceCents int64) (*Plan, error)
	ToggleActive(ctx context.Context, id int) (*Plan, error)
	Delete(ctx context.Context, id int) error
	ListActive(ctx context.Context) ([]Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	IsReferenced(ctx context.Context, id int) (bool, error)
}
