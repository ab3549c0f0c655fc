package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"unbroken/internal/member"
	"unbroken/internal/sessionlog"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrNoSessionsRemaining  = errors.New("no sessions remaining")
	ErrSubscriptionExpired  = errors.New("subscription end date has passed")
	ErrNoSubscription       = errors.New("member has no subscription")
)

const subscriptionColumns = "id, member_id, plan_id, start_date, end_date, remaining_sessions, status, created_at, updated_at"

// currentActiveQuery resolves the member's current subscription: the row
// with the highest id, locked so concurrent deductions for the same member
// serialize. Different members never contend for the same lock.
const currentActiveQuery = `
	SELECT id, member_id, plan_id, start_date, end_date, remaining_sessions, status, created_at, updated_at
	FROM subscriptions
	WHERE member_id = $1 AND status = 'active'
	ORDER BY id DESC
	LIMIT 1
	FOR UPDATE
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Replace cancels any prior active subscription for the member and inserts
// a fresh active row, all in one transaction, so at most one subscription
// per member is ever active.
func (r *repository) Replace(ctx context.Context, m *member.Member, planID, sessions int, performedBy, performedRole string) (*Subscription, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'cancelled', updated_at = NOW()
		WHERE member_id = $1 AND status = 'active'
	`, m.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	endDate := now.AddDate(0, 0, cycleDays)

	var sub Subscription
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO subscriptions (member_id, plan_id, start_date, end_date, remaining_sessions, status)
		VALUES ($1, $2, $3, $4, $5, 'active')
		RETURNING `+subscriptionColumns+`
	`, m.ID, planID, now, endDate, sessions).StructScan(&sub)
	if err != nil {
		return nil, err
	}

	_, err = sessionlog.Insert(ctx, tx, &sessionlog.Entry{
		MemberID:       &m.ID,
		SubscriptionID: &sub.ID,
		MemberDocument: m.Document,
		MemberName:     m.FullName,
		Action:         sessionlog.ActionRenewal,
		PerformedBy:    performedBy,
		PerformedRole:  performedRole,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &sub, nil
}

// CancelActive flips the member's current active subscription to cancelled
// and returns the number of rows affected. A member with nothing active is
// a no-op, not an error, so repeated cancels stay idempotent.
func (r *repository) CancelActive(ctx context.Context, m *member.Member, performedBy, performedRole, note string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var sub Subscription
	err = tx.GetContext(ctx, &sub, currentActiveQuery, m.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1
	`, sub.ID)
	if err != nil {
		return 0, err
	}

	_, err = sessionlog.Insert(ctx, tx, &sessionlog.Entry{
		MemberID:       &m.ID,
		SubscriptionID: &sub.ID,
		MemberDocument: m.Document,
		MemberName:     m.FullName,
		Action:         sessionlog.ActionCancellation,
		PerformedBy:    performedBy,
		PerformedRole:  performedRole,
		Note:           note,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return 1, nil
}

// UseSession deducts one session from the member's current active
// subscription. The decrement, the possible active->expired flip and the
// audit entry commit together or not at all.
func (r *repository) UseSession(ctx context.Context, m *member.Member, performedBy, performedRole, note string) (*UsageResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var sub Subscription
	err = tx.GetContext(ctx, &sub, currentActiveQuery, m.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveSubscription
		}
		return nil, err
	}

	if sub.DateLapsed(time.Now()) {
		return nil, ErrSubscriptionExpired
	}

	// The expired flip at zero normally makes this unreachable; it guards
	// rows written before that invariant held.
	if sub.RemainingSessions <= 0 {
		return nil, ErrNoSessionsRemaining
	}

	remainingBefore := sub.RemainingSessions
	remainingAfter := remainingBefore - 1
	newStatus := nextStatus(remainingAfter)

	err = tx.QueryRowxContext(ctx, `
		UPDATE subscriptions
		SET remaining_sessions = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+subscriptionColumns+`
	`, sub.ID, remainingAfter, newStatus).StructScan(&sub)
	if err != nil {
		return nil, err
	}

	_, err = sessionlog.Insert(ctx, tx, &sessionlog.Entry{
		MemberID:        &m.ID,
		SubscriptionID:  &sub.ID,
		MemberDocument:  m.Document,
		MemberName:      m.FullName,
		Action:          sessionlog.ActionSessionDiscount,
		RemainingBefore: &remainingBefore,
		RemainingAfter:  &remainingAfter,
		PerformedBy:     performedBy,
		PerformedRole:   performedRole,
		Note:            note,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &UsageResult{
		Subscription:    sub,
		RemainingBefore: remainingBefore,
		Remaining:       remainingAfter,
		Expired:         newStatus == StatusExpired,
	}, nil
}

// GetCurrent returns the member's most recent subscription row regardless
// of status, resolved by highest id.
func (r *repository) GetCurrent(ctx context.Context, memberID int) (*Subscription, error) {
	query := `
		SELECT id, member_id, plan_id, start_date, end_date, remaining_sessions, status, created_at, updated_at
		FROM subscriptions
		WHERE member_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, memberID)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}
