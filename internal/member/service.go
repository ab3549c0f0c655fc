package member

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"unbroken/internal/metrics"
)

var (
	ErrInvalidMember  = errors.New("document and full name are required")
	ErrMemberNotFound = errors.New("member not found")
)

type Service interface {
	Upsert(ctx context.Context, req UpsertMemberRequest) (*Member, error)
	FindByDocument(ctx context.Context, document string) (*Member, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Upsert(ctx context.Context, req UpsertMemberRequest) (*Member, error) {
	document := strings.TrimSpace(req.Document)
	fullName := strings.TrimSpace(req.FullName)
	if document == "" || fullName == "" {
		return nil, ErrInvalidMember
	}

	existing, err := s.repo.FindByDocument(ctx, document)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	m, err := s.repo.Upsert(ctx, &Member{
		Document:         document,
		FullName:         fullName,
		Phone:            req.Phone,
		Email:            req.Email,
		MedicalNotes:     req.MedicalNotes,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		return nil, err
	}

	if existing == nil {
		metrics.RecordMemberCreated()
	}

	return m, nil
}

func (s *service) FindByDocument(ctx context.Context, document string) (*Member, error) {
	m, err := s.repo.FindByDocument(ctx, document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
