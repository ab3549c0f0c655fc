package plan

import "time"

type Plan struct {
	ID               int       `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	SessionsPerCycle int       `db:"sessions_per_cycle" json:"sessions_per_cycle"`
	PriceCents       int64     `db:"price_cents" json:"price_cents"`
	Active           bool      `db:"active" json:"active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePlanRequest struct {
	Name             string `json:"name" binding:"required"`
	SessionsPerCycle int    `json:"sessions_per_cycle" binding:"required,min=1"`
	PriceCents       int64  `json:"price_cents" binding:"min=0"`
}

type UpdatePlanRequest struct {
	Name             string `json:"name" binding:"required"`
	SessionsPerCycle int    `json:"sessions_per_cycle" binding:"required,min=1"`
	PriceCents       int64  `json:"price_cents" binding:"min=0"`
}
