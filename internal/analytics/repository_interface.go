package analytics

import (
	"context"
	"time"
)

type Repository interface {
	MonthlyMemberCounts(ctx context.Context, since time.Time) (map[string]int, error)
	MonthlySessionCounts(ctx context.Context, since time.Time) (map[string]int, error)
}
