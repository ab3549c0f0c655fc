package plan

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

var (
	ErrInvalidPlan  = errors.New("invalid plan data")
	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanInUse    = errors.New("plan is referenced by existing subscriptions")
)

type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error)
	ToggleActive(ctx context.Context, id int) (*Plan, error)
	Delete(ctx context.Context, id int) error
	ListActive(ctx context.Context) ([]Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validatePlanFields(name string, sessionsPerCycle int, priceCents int64) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidPlan
	}
	if sessionsPerCycle <= 0 {
		return ErrInvalidPlan
	}
	if priceCents < 0 {
		return ErrInvalidPlan
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	if err := validatePlanFields(req.Name, req.SessionsPerCycle, req.PriceCents); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, strings.TrimSpace(req.Name), req.SessionsPerCycle, req.PriceCents)
}

func (s *service) Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error) {
	if err := validatePlanFields(req.Name, req.SessionsPerCycle, req.PriceCents); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, strings.TrimSpace(req.Name), req.SessionsPerCycle, req.PriceCents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) ToggleActive(ctx context.Context, id int) (*Plan, error) {
	p, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	referenced, err := s.repo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrPlanInUse
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ListActive(ctx context.Context) ([]Plan, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) GetByID(ctx context.Context, id int) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}
