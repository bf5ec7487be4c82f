package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/validator"
	"github.com/thrivecorp/platform/pkg/logger"
)

type CompanyService struct {
	repo       repository.Repository
	resolver   *authz.Resolver
	bcryptCost int
}

func NewCompanyService(repo repository.Repository, resolver *authz.Resolver) *CompanyService {
	return &CompanyService{repo: repo, resolver: resolver, bcryptCost: bcrypt.DefaultCost}
}

func (s *CompanyService) List(ctx context.Context, p authz.Principal) ([]*model.Company, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}
	return s.repo.Companies().List(ctx)
}

// Mine returns the company administered by the caller
func (s *CompanyService) Mine(ctx context.Context, p authz.Principal) (*model.Company, error) {
	return s.resolver.ResolveCompany(ctx, p)
}

// Approve activates the company together with its admin user
func (s *CompanyService) Approve(ctx context.Context, p authz.Principal, companyID uint) (*model.Company, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}

	var company *model.Company
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		c, err := tx.Companies().Get(ctx, companyID)
		if err != nil {
			return err
		}
		if err := tx.Companies().UpdateStatus(ctx, c.ID, model.CompanyStatusActive); err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, c.AdminID, model.UserStatusActive); err != nil {
			return err
		}
		c.Status = model.CompanyStatusActive
		company = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("company approved", zap.Uint("company_id", companyID), zap.Uint("admin_id", p.UserID))
	return company, nil
}

// Delete removes the company, its collaborators and their users in one
// transaction. Either every row goes or none does. The company admin user
// is kept.
func (s *CompanyService) Delete(ctx context.Context, p authz.Principal, companyID uint) error {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return err
	}

	var removed int
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.Companies().Get(ctx, companyID); err != nil {
			return err
		}
		collaborators, err := tx.Collaborators().ListByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if err := tx.Collaborators().DeleteByCompany(ctx, companyID); err != nil {
			return err
		}
		userIDs := lo.Map(collaborators, func(c *model.Collaborator, _ int) uint { return c.UserID })
		if err := tx.Users().Delete(ctx, userIDs...); err != nil {
			return err
		}
		removed = len(userIDs)
		return tx.Companies().Delete(ctx, companyID)
	})
	if err != nil {
		logger.Ctx(ctx).Error("company deletion rolled back",
			zap.Uint("company_id", companyID),
			zap.Error(err))
		return err
	}

	logger.Ctx(ctx).Info("company deleted",
		zap.Uint("company_id", companyID),
		zap.Int("collaborators_removed", removed),
		zap.Uint("admin_id", p.UserID))
	return nil
}

type AddCollaboratorInput struct {
	AccountInput
}

// AddCollaborator creates an active collaborator user for the caller's company
func (s *CompanyService) AddCollaborator(ctx context.Context, p authz.Principal, in AddCollaboratorInput) (*model.Collaborator, error) {
	company, err := s.resolver.ResolveCompany(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRequest(&in); err != nil {
		return nil, err
	}
	user, err := newUser(in.AccountInput, model.RoleCollaborator, model.UserStatusActive, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	collaborator := &model.Collaborator{
		CompanyID: company.ID,
		Status:    model.CollaboratorStatusActive,
	}
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		collaborator.UserID = user.ID
		return tx.Collaborators().Create(ctx, collaborator)
	})
	if err != nil {
		return nil, err
	}
	collaborator.User = user
	return collaborator, nil
}

func (s *CompanyService) ListCollaborators(ctx context.Context, p authz.Principal) ([]*model.Collaborator, error) {
	company, err := s.resolver.ResolveCompany(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Collaborators().ListByCompany(ctx, company.ID)
}

// SetCollaboratorStatus activates or deactivates a collaborator of the
// caller's company. Inactive collaborators are left out of billing.
func (s *CompanyService) SetCollaboratorStatus(ctx context.Context, p authz.Principal, collaboratorID uint, status model.CollaboratorStatus) (*model.Collaborator, error) {
	company, err := s.resolver.ResolveCompany(ctx, p)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ierr.NewError("invalid collaborator status").
			WithHint("Status inválido. Use 'active' ou 'inactive'").
			Mark(ierr.ErrValidation)
	}

	collaborator, err := s.repo.Collaborators().Get(ctx, collaboratorID)
	if err != nil {
		return nil, err
	}
	if collaborator.CompanyID != company.ID {
		return nil, ierr.NewError("collaborator belongs to another company").
			WithHint("Você não tem permissão para alterar este colaborador").
			Mark(ierr.ErrForbidden)
	}
	if err := s.repo.Collaborators().UpdateStatus(ctx, collaboratorID, status); err != nil {
		return nil, err
	}
	collaborator.Status = status
	return collaborator, nil
}
