package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

type AccessService struct {
	repo     repository.Repository
	resolver *authz.Resolver
	now      func() time.Time
}

func NewAccessService(repo repository.Repository, resolver *authz.Resolver, now func() time.Time) *AccessService {
	return &AccessService{repo: repo, resolver: resolver, now: now}
}

// CheckIn records an access of the calling collaborator at an active gym
func (s *AccessService) CheckIn(ctx context.Context, p authz.Principal, gymID uint) (*model.Access, error) {
	if gymID == 0 {
		return nil, ierr.NewError("gym id is required").
			WithHint("Academia é obrigatória").
			Mark(ierr.ErrValidation)
	}
	collaborator, err := s.resolver.ResolveCollaborator(ctx, p)
	if err != nil {
		return nil, err
	}
	if collaborator.Status != model.CollaboratorStatusActive {
		return nil, ierr.NewError("collaborator is inactive").
			WithHint("Colaborador inativo").
			Mark(ierr.ErrForbidden)
	}

	gym, err := s.repo.Gyms().Get(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if gym.Status != model.GymStatusActive {
		return nil, ierr.NewError("gym is not active").
			WithHint("Academia não está ativa").
			Mark(ierr.ErrValidation)
	}

	access := &model.Access{
		UserID:          p.UserID,
		GymID:           gym.ID,
		AccessTimestamp: s.now().UTC(),
	}
	if err := s.repo.Accesses().Create(ctx, access); err != nil {
		return nil, err
	}

	prometheus.CheckinCounter.Inc()
	logger.Ctx(ctx).Info("check-in recorded",
		zap.Uint("user_id", p.UserID),
		zap.Uint("gym_id", gym.ID),
		zap.Uint("access_id", access.ID))
	return access, nil
}

// ProviderReport lists the period's accesses at the caller provider's gyms
func (s *AccessService) ProviderReport(ctx context.Context, p authz.Principal, year, month int) ([]*model.ProviderAccessRow, error) {
	provider, err := s.resolver.ResolveProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Accesses().ProviderReport(ctx, provider.ID, year, month)
}

// CompanyReport summarises the period's accesses per collaborator of the
// caller's company
func (s *AccessService) CompanyReport(ctx context.Context, p authz.Principal, year, month int) ([]*model.CollaboratorUsageRow, error) {
	company, err := s.resolver.ResolveCompany(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Accesses().CompanyUsage(ctx, company.ID, year, month)
}
