// Package service implements the platform's business operations. Every
// operation receives the authenticated principal and runs its authorization
// gate before touching the repository.
package service

import (
	"time"

	"github.com/thrivecorp/platform/internal/authz"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/pkg/jwtutil"
)

// Services bundles every service over one repository
type Services struct {
	Auth      *AuthService
	Companies *CompanyService
	Gyms      *GymService
	Plans     *PlanService
	Accesses  *AccessService
	Billing   *BillingService
	Pricing   *PricingService
}

func New(repo repository.Repository, jwt *jwtutil.JWTUtil) *Services {
	resolver := authz.NewResolver(repo)
	clock := func() time.Time { return time.Now().UTC() }
	pricing := NewPricingService(repo)
	return &Services{
		Auth:      NewAuthService(repo, jwt),
		Companies: NewCompanyService(repo, resolver),
		Gyms:      NewGymService(repo, resolver),
		Plans:     NewPlanService(repo, resolver, pricing),
		Accesses:  NewAccessService(repo, resolver, clock),
		Billing:   NewBillingService(repo, resolver, clock),
		Pricing:   pricing,
	}
}
