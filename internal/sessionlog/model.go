package sessionlog

import "time"

type Action string

const (
	ActionSessionDiscount Action = "session_discount"
	ActionRenewal         Action = "renewal"
	ActionCancellation    Action = "cancellation"
)

// Entry is an append-only audit record. Member and subscription references
// are soft: MemberDocument and MemberName are snapshots taken at write time
// and stay authoritative even after the member row is gone.
type Entry struct {
	ID              int       `db:"id" json:"id"`
	MemberID        *int      `db:"member_id" json:"member_id,omitempty"`
	SubscriptionID  *int      `db:"subscription_id" json:"subscription_id,omitempty"`
	MemberDocument  string    `db:"member_document" json:"member_document"`
	MemberName      string    `db:"member_name" json:"member_name"`
	Action          Action    `db:"action" json:"action"`
	RemainingBefore *int      `db:"remaining_before" json:"remaining_before,omitempty"`
	RemainingAfter  *int      `db:"remaining_after" json:"remaining_after,omitempty"`
	PerformedBy     string    `db:"performed_by" json:"performed_by"`
	PerformedRole   string    `db:"performed_role" json:"performed_role"`
	Note            string    `db:"note" json:"note"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
