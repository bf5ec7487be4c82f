package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/authz"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/validator"
	"github.com/thrivecorp/platform/pkg/logger"
)

type GymService struct {
	repo     repository.Repository
	resolver *authz.Resolver
}

func NewGymService(repo repository.Repository, resolver *authz.Resolver) *GymService {
	return &GymService{repo: repo, resolver: resolver}
}

type GymInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// Create registers a pending gym for the caller's provider
func (s *GymService) Create(ctx context.Context, p authz.Principal, in GymInput) (*model.Gym, error) {
	provider, err := s.resolver.ResolveProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRequest(&in); err != nil {
		return nil, err
	}
	gym := &model.Gym{
		ProviderID: provider.ID,
		Name:       in.Name,
		Address:    in.Address,
		Status:     model.GymStatusPending,
	}
	if err := s.repo.Gyms().Create(ctx, gym); err != nil {
		return nil, err
	}
	return gym, nil
}

// List returns every gym to admins, their own gyms to providers and active
// gyms to collaborators.
func (s *GymService) List(ctx context.Context, p authz.Principal) ([]*model.Gym, error) {
	if err := authz.Authorize(p, authz.GateGymListing); err != nil {
		return nil, err
	}

	var filter repository.GymFilter
	switch p.Role {
	case model.RoleProvider:
		provider, err := s.resolver.ResolveProvider(ctx, p)
		if err != nil {
			return nil, err
		}
		filter.ProviderID = &provider.ID
	case model.RoleCollaborator:
		active := model.GymStatusActive
		filter.Status = &active
	case model.RoleThriveAdmin:
		// no filter
	}
	return s.repo.Gyms().List(ctx, filter)
}

// Approve activates the gym and the user of its provider
func (s *GymService) Approve(ctx context.Context, p authz.Principal, gymID uint) (*model.Gym, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}

	var gym *model.Gym
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		g, err := tx.Gyms().Get(ctx, gymID)
		if err != nil {
			return err
		}
		provider, err := tx.Providers().Get(ctx, g.ProviderID)
		if err != nil {
			return err
		}
		if err := tx.Gyms().UpdateStatus(ctx, g.ID, model.GymStatusActive); err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, provider.UserID, model.UserStatusActive); err != nil {
			return err
		}
		g.Status = model.GymStatusActive
		gym = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("gym approved", zap.Uint("gym_id", gymID), zap.Uint("admin_id", p.UserID))
	return gym, nil
}

// Reprove removes the gym. When the provider is left without gyms its user
// goes back to pending and the provider row is deleted, all in one
// transaction.
func (s *GymService) Reprove(ctx context.Context, p authz.Principal, gymID uint) error {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return err
	}

	providerRemoved := false
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		gym, err := tx.Gyms().Get(ctx, gymID)
		if err != nil {
			return err
		}
		if err := tx.Gyms().Delete(ctx, gym.ID); err != nil {
			return err
		}
		remaining, err := tx.Gyms().CountByProvider(ctx, gym.ProviderID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		provider, err := tx.Providers().Get(ctx, gym.ProviderID)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, provider.UserID, model.UserStatusPending); err != nil {
			return err
		}
		providerRemoved = true
		return tx.Providers().Delete(ctx, provider.ID)
	})
	if err != nil {
		return err
	}

	logger.Ctx(ctx).Info("gym reproved",
		zap.Uint("gym_id", gymID),
		zap.Bool("provider_removed", providerRemoved),
		zap.Uint("admin_id", p.UserID))
	return nil
}

// Delete removes a gym. Admins may delete any gym, providers only their own.
// A missing gym is reported as not found before ownership is checked.
func (s *GymService) Delete(ctx context.Context, p authz.Principal, gymID uint) error {
	if err := authz.Authorize(p, authz.GateGymDeletion); err != nil {
		return err
	}
	gym, err := s.repo.Gyms().Get(ctx, gymID)
	if err != nil {
		return err
	}
	if err := s.resolver.AuthorizeGymDeletion(ctx, p, gym); err != nil {
		return err
	}
	if err := s.repo.Gyms().Delete(ctx, gym.ID); err != nil {
		return err
	}
	logger.Ctx(ctx).Info("gym deleted", zap.Uint("gym_id", gymID), zap.Uint("user_id", p.UserID))
	return nil
}
