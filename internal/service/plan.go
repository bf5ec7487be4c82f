package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/validator"
)

type PlanService struct {
	repo     repository.Repository
	resolver *authz.Resolver
	pricing  *PricingService
}

func NewPlanService(repo repository.Repository, resolver *authz.Resolver, pricing *PricingService) *PlanService {
	return &PlanService{repo: repo, resolver: resolver, pricing: pricing}
}

// EffectivePrice is the price per access billed for the caller's provider
type EffectivePrice struct {
	ProviderID     uint                `json:"provider_id"`
	PricePerAccess decimal.NullDecimal `json:"price_per_access"`
}

type PlanInput struct {
	Name           string          `json:"name" validate:"required"`
	Description    string          `json:"description"`
	PricePerAccess decimal.Decimal `json:"price_per_access"`
}

func (in *PlanInput) Validate() error {
	if err := validator.ValidateRequest(in); err != nil {
		return err
	}
	if !in.PricePerAccess.IsPositive() {
		return ierr.NewError("price per access must be positive").
			WithHint("O preço por acesso deve ser maior que zero").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Create adds a plan to the caller's provider. Only the provider's oldest
// plan is used for pricing.
func (s *PlanService) Create(ctx context.Context, p authz.Principal, in PlanInput) (*model.Plan, error) {
	provider, err := s.resolver.ResolveProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	plan := &model.Plan{
		ProviderID:     provider.ID,
		Name:           in.Name,
		Description:    in.Description,
		PricePerAccess: in.PricePerAccess.Round(2),
	}
	if err := s.repo.Plans().Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) List(ctx context.Context, p authz.Principal) ([]*model.Plan, error) {
	provider, err := s.resolver.ResolveProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Plans().ListByProvider(ctx, provider.ID)
}

// Effective returns the price the billing reports apply to the caller's
// provider. It is null while the provider has no plan.
func (s *PlanService) Effective(ctx context.Context, p authz.Principal) (*EffectivePrice, error) {
	provider, err := s.resolver.ResolveProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	price, err := s.pricing.ResolvePrice(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	return &EffectivePrice{ProviderID: provider.ID, PricePerAccess: price}, nil
}

func (s *PlanService) Update(ctx context.Context, p authz.Principal, planID uint, in PlanInput) (*model.Plan, error) {
	plan, err := s.owned(ctx, p, planID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	plan.Name = in.Name
	plan.Description = in.Description
	plan.PricePerAccess = in.PricePerAccess.Round(2)
	if err := s.repo.Plans().Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, p authz.Principal, planID uint) error {
	plan, err := s.owned(ctx, p, planID)
	if err != nil {
		return err
	}
	return s.repo.Plans().Delete(ctx, plan.ID)
}

// owned loads a plan of the caller's provider
func (s *PlanService) owned(ctx context.Context, p authz.Principal, planID uint) (*model.Plan, error) {
	provider, err := s.resolver.ResolveProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	plan, err := s.repo.Plans().Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.ProviderID != provider.ID {
		return nil, ierr.NewError("plan belongs to another provider").
			WithHint("Você não tem permissão para alterar este plano").
			Mark(ierr.ErrForbidden)
	}
	return plan, nil
}
