package member

import "context"

type Repository interface {
	Upsert(ctx context.Context, m *Member) (*Member, error)
	FindByDocument(ctx context.Context, document string) (*Member, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	Delete(ctx context.Context, id int) error
}
