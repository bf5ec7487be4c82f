package service

import (
	"context"

	"github.com/shopspring/decimal"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/repository"
)

type PricingService struct {
	repo repository.Repository
}

func NewPricingService(repo repository.Repository) *PricingService {
	return &PricingService{repo: repo}
}

// ResolvePrice returns the provider's current price per access: the price of
// its oldest plan (lowest id). Later plans are ignored. A provider without
// plans has no price and the result is invalid.
func (s *PricingService) ResolvePrice(ctx context.Context, providerID uint) (decimal.NullDecimal, error) {
	plan, err := s.repo.Plans().FirstByProvider(ctx, providerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return decimal.NullDecimal{}, nil
		}
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(plan.PricePerAccess), nil
}
