package subscription

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// cycleDays is the length of one billing cycle; the end date is an
// exclusive upper bound at start + cycleDays.
const cycleDays = 30

type Subscription struct {
	ID                int       `db:"id" json:"id"`
	MemberID          int       `db:"member_id" json:"member_id"`
	PlanID            int       `db:"plan_id" json:"plan_id"`
	StartDate         time.Time `db:"start_date" json:"start_date"`
	EndDate           time.Time `db:"end_date" json:"end_date"`
	RemainingSessions int       `db:"remaining_sessions" json:"remaining_sessions"`
	Status            Status    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// nextStatus is the deduction transition: a subscription stays active
// until its counter reaches zero, then flips to expired.
func nextStatus(remainingAfter int) Status {
	if remainingAfter <= 0 {
		return StatusExpired
	}
	return StatusActive
}

// DateLapsed reports whether the subscription's end date has passed.
// Lapse is evaluated lazily at read time; a date-expired subscription
// keeps status=active in storage until the next use attempt.
func (s *Subscription) DateLapsed(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.EndDate.Before(today)
}

type UsageResult struct {
	Subscription    Subscription `json:"subscription"`
	RemainingBefore int          `json:"remaining_before"`
	Remaining       int          `json:"remaining"`
	Expired         bool         `json:"expired"`
}

type RegisterRenewRequest struct {
	Document         string `json:"document" binding:"required"`
	PlanID           int    `json:"plan_id" binding:"required"`
	SessionsOverride *int   `json:"sessions_override,omitempty" binding:"omitempty,min=1"`

	// Profile fields used only when the document is not registered yet.
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type CancelRequest struct {
	Document string `json:"document" binding:"required"`
	Note     string `json:"note"`
}

type UseSessionRequest struct {
	Document string `json:"document" binding:"required"`
	Note     string `json:"note"`
}
