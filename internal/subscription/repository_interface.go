package subscription

import (
	"context"

	"unbroken/internal/member"
)

type Repository interface {
	Replace(ctx context.Context, m *member.Member, planID, sessions int, performedBy, performedRole string) (*Subscription, error)
	CancelActive(ctx context.Context, m *member.Member, performedBy, performedRole, note string) (int64, error)
	UseSession(ctx context.Context, m *member.Member, performedBy, performedRole, note string) (*UsageResult, error)
	GetCurrent(ctx context.Context, memberID int) (*Subscription, error)
}
