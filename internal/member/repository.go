package member

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts a member keyed by document, updating the mutable profile
// fields in place on re-registration with the same document.
func (r *repository) Upsert(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO members (document, full_name, phone, email, medical_notes, emergency_contact)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (document) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    phone = EXCLUDED.phone,
		    email = EXCLUDED.email,
		    medical_notes = EXCLUDED.medical_notes,
		    emergency_contact = EXCLUDED.emergency_contact,
		    updated_at = NOW()
		RETURNING id, document, full_name, phone, email, medical_notes, emergency_contact, created_at, updated_at
	`

	var saved Member
	err := r.db.GetContext(ctx, &saved, query,
		m.Document, m.FullName, m.Phone, m.Email, m.MedicalNotes, m.EmergencyContact)
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *repository) FindByDocument(ctx context.Context, document string) (*Member, error) {
	query := `
		SELECT id, document, full_name, phone, email, medical_notes, emergency_contact, created_at, updated_at
		FROM members
		WHERE document = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, document)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, document, full_name, phone, email, medical_notes, emergency_contact, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Delete removes the member and their subscriptions in one transaction.
// Session log rows keep their snapshot fields and are never touched.
func (r *repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE member_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return tx.Commit()
}
