package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
)

func TestPricingService_FirstPlanWins(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seed.Admin()
	company, _ := env.seed.Company("Acme")
	collaborator := env.seed.Collaborator(company.ID, "Ana", "Souza", model.CollaboratorStatusActive)
	provider, _ := env.seed.Provider("FitCo", model.UserStatusActive)
	gym := env.seed.Gym(provider.ID, "Centro", model.GymStatusActive)
	env.seed.Plan(provider.ID, "10.00")
	env.seed.Plan(provider.ID, "20.00")
	env.seed.Access(collaborator.ID, gym.ID, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	env.seed.Access(collaborator.ID, gym.ID, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC))

	price, err := env.svc.Pricing.ResolvePrice(env.ctx, provider.ID)
	require.NoError(t, err)
	require.True(t, price.Valid)
	assert.True(t, decimal.RequireFromString("10").Equal(price.Decimal))

	rows, err := env.svc.Billing.MonthlyReport(env.ctx, principal(admin), 2024, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, decimal.RequireFromString("20").Equal(rows[0].TotalCost))

	details, err := env.svc.Billing.CompanyAccessDetails(env.ctx, principal(mustAdminOf(t, env, company)), 2024, 3)
	require.NoError(t, err)
	for _, d := range details {
		assert.True(t, decimal.RequireFromString("10").Equal(d.PricePerAccess.Decimal))
	}
}

func TestPricingService_NoPlan(t *testing.T) {
	env := newTestEnv(t)
	provider, _ := env.seed.Provider("Sem Plano", model.UserStatusActive)

	price, err := env.svc.Pricing.ResolvePrice(env.ctx, provider.ID)
	require.NoError(t, err)
	assert.False(t, price.Valid)
}

func TestPricingService_DatabaseError(t *testing.T) {
	env := newTestEnv(t)
	env.repo.FailOn("plans.first", assert.AnError)

	_, err := env.svc.Pricing.ResolvePrice(env.ctx, 1)
	require.Error(t, err)
	assert.Equal(t, 500, ierr.HTTPStatus(err))
}

func mustAdminOf(t *testing.T, env *testEnv, c *model.Company) *model.User {
	t.Helper()
	u, err := env.repo.Users().Get(env.ctx, c.AdminID)
	require.NoError(t, err)
	return u
}
