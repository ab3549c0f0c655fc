package subscription

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"unbroken/internal/logger"
	"unbroken/internal/member"
	"unbroken/internal/metrics"
	"unbroken/internal/plan"
)

var ErrPlanUnavailable = errors.New("plan missing or inactive")

// Notifier queues member-facing mail. Failures are logged, never surfaced:
// notifications must not block a state transition.
type Notifier interface {
	SendRenewalReceipt(ctx context.Context, to, name, planName string, endDate time.Time) error
	SendCancellationNotice(ctx context.Context, to, name string) error
}

type Service interface {
	RegisterOrRenew(ctx context.Context, req RegisterRenewRequest, performedBy, performedRole string) (*Subscription, error)
	Cancel(ctx context.Context, req CancelRequest, performedBy, performedRole string) (int64, error)
	UseSession(ctx context.Context, req UseSessionRequest, performedBy, performedRole string) (*UsageResult, error)
	Current(ctx context.Context, document string) (*Subscription, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	planRepo   plan.Repository
	notifier   Notifier
}

func NewService(repo Repository, memberRepo member.Repository, planRepo plan.Repository, notifier Notifier) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		planRepo:   planRepo,
		notifier:   notifier,
	}
}

func (s *service) RegisterOrRenew(ctx context.Context, req RegisterRenewRequest, performedBy, performedRole string) (*Subscription, error) {
	m, err := s.memberRepo.FindByDocument(ctx, strings.TrimSpace(req.Document))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		m, err = s.registerMember(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	p, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanUnavailable
		}
		return nil, err
	}
	if !p.Active {
		return nil, ErrPlanUnavailable
	}

	sessions := p.SessionsPerCycle
	if req.SessionsOverride != nil && *req.SessionsOverride > 0 {
		sessions = *req.SessionsOverride
	}

	sub, err := s.repo.Replace(ctx, m, p.ID, sessions, performedBy, performedRole)
	if err != nil {
		return nil, err
	}

	metrics.RecordRenewal(p.Name)
	logger.Info("subscription renewed",
		"document", m.Document,
		"plan", p.Name,
		"sessions", sessions,
		"subscription_id", sub.ID,
	)

	if m.Email != "" {
		if err := s.notifier.SendRenewalReceipt(ctx, m.Email, m.FullName, p.Name, sub.EndDate); err != nil {
			logger.Errorf("Failed to queue renewal receipt for %s: %v", m.Document, err)
		}
	}

	return sub, nil
}

func (s *service) registerMember(ctx context.Context, req RegisterRenewRequest) (*member.Member, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, member.ErrInvalidMember
	}

	m, err := s.memberRepo.Upsert(ctx, &member.Member{
		Document: strings.TrimSpace(req.Document),
		FullName: strings.TrimSpace(req.FullName),
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMemberCreated()
	return m, nil
}

func (s *service) Cancel(ctx context.Context, req CancelRequest, performedBy, performedRole string) (int64, error) {
	m, err := s.memberRepo.FindByDocument(ctx, strings.TrimSpace(req.Document))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, member.ErrMemberNotFound
		}
		return 0, err
	}

	affected, err := s.repo.CancelActive(ctx, m, performedBy, performedRole, req.Note)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		metrics.RecordCancellation()
		logger.Info("subscription cancelled", "document", m.Document)

		if m.Email != "" {
			if err := s.notifier.SendCancellationNotice(ctx, m.Email, m.FullName); err != nil {
				logger.Errorf("Failed to queue cancellation notice for %s: %v", m.Document, err)
			}
		}
	}

	return affected, nil
}

func (s *service) UseSession(ctx context.Context, req UseSessionRequest, performedBy, performedRole string) (*UsageResult, error) {
	m, err := s.memberRepo.FindByDocument(ctx, strings.TrimSpace(req.Document))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrMemberNotFound
		}
		return nil, err
	}

	res, err := s.repo.UseSession(ctx, m, performedBy, performedRole, req.Note)
	if err != nil {
		return nil, err
	}

	metrics.RecordSessionUse(res.Expired)
	logger.Info("session deducted",
		"document", m.Document,
		"remaining", res.Remaining,
		"status", res.Subscription.Status,
	)

	return res, nil
}

func (s *service) Current(ctx context.Context, document string) (*Subscription, error) {
	m, err := s.memberRepo.FindByDocument(ctx, strings.TrimSpace(document))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrMemberNotFound
		}
		return nil, err
	}

	sub, err := s.repo.GetCurrent(ctx, m.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSubscription
		}
		return nil, err
	}

	return sub, nil
}
