package member

import "time"

type Member struct {
	ID               int       `db:"id" json:"id"`
	Document         string    `db:"document" json:"document"`
	FullName         string    `db:"full_name" json:"full_name"`
	Phone            string    `db:"phone" json:"phone"`
	Email            string    `db:"email" json:"email"`
	MedicalNotes     string    `db:"medical_notes" json:"medical_notes"`
	EmergencyContact string    `db:"emergency_contact" json:"emergency_contact"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type UpsertMemberRequest struct {
	Document         string `json:"document" binding:"required"`
	FullName         string `json:"full_name" binding:"required"`
	Phone            string `json:"phone"`
	Email            string `json:"email" binding:"omitempty,email"`
	MedicalNotes     string `json:"medical_notes"`
	EmergencyContact string `json:"emergency_contact"`
}
