package sessionlog

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) (*Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
