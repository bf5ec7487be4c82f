package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
)

func TestPlanService(t *testing.T) {
	env := newTestEnv(t)
	provider, owner := env.seed.Provider("FitCo", model.UserStatusActive)
	_, intruder := env.seed.Provider("GymCorp", model.UserStatusActive)

	plan, err := env.svc.Plans.Create(env.ctx, principal(owner), PlanInput{
		Name:           "Básico",
		PricePerAccess: decimal.RequireFromString("12.345"),
	})
	require.NoError(t, err)
	assert.Equal(t, provider.ID, plan.ProviderID)
	assert.Equal(t, "12.35", plan.PricePerAccess.StringFixed(2))

	t.Run("price must be positive", func(t *testing.T) {
		for _, price := range []string{"0", "-1"} {
			_, err := env.svc.Plans.Create(env.ctx, principal(owner), PlanInput{
				Name: "Grátis", PricePerAccess: decimal.RequireFromString(price),
			})
			assert.True(t, ierr.IsValidation(err), price)
		}
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		second, err := env.svc.Plans.Create(env.ctx, principal(owner), PlanInput{
			Name: "Premium", PricePerAccess: decimal.NewFromInt(30),
		})
		require.NoError(t, err)
		plans, err := env.svc.Plans.List(env.ctx, principal(owner))
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, plan.ID, plans[0].ID)
		assert.Equal(t, second.ID, plans[1].ID)
	})

	t.Run("other provider cannot change the plan", func(t *testing.T) {
		_, err := env.svc.Plans.Update(env.ctx, principal(intruder), plan.ID, PlanInput{
			Name: "Hack", PricePerAccess: decimal.NewFromInt(1),
		})
		assert.True(t, ierr.IsForbidden(err))
		assert.True(t, ierr.IsForbidden(env.svc.Plans.Delete(env.ctx, principal(intruder), plan.ID)))
	})

	t.Run("owner updates and deletes", func(t *testing.T) {
		updated, err := env.svc.Plans.Update(env.ctx, principal(owner), plan.ID, PlanInput{
			Name: "Básico+", PricePerAccess: decimal.NewFromInt(14),
		})
		require.NoError(t, err)
		assert.Equal(t, "Básico+", updated.Name)

		price, err := env.svc.Pricing.ResolvePrice(env.ctx, provider.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(14).Equal(price.Decimal))

		require.NoError(t, env.svc.Plans.Delete(env.ctx, principal(owner), plan.ID))
		assert.True(t, ierr.IsNotFound(env.svc.Plans.Delete(env.ctx, principal(owner), plan.ID)))
	})

	t.Run("only providers manage plans", func(t *testing.T) {
		admin := env.seed.Admin()
		_, err := env.svc.Plans.List(env.ctx, principal(admin))
		assert.True(t, ierr.IsForbidden(err))
	})
}

func TestPlanService_Effective(t *testing.T) {
	env := newTestEnv(t)
	provider, owner := env.seed.Provider("FitCo", model.UserStatusActive)

	price, err := env.svc.Plans.Effective(env.ctx, principal(owner))
	require.NoError(t, err)
	assert.Equal(t, provider.ID, price.ProviderID)
	assert.False(t, price.PricePerAccess.Valid, "no plan, no price")

	for _, p := range []int64{10, 20} {
		_, err := env.svc.Plans.Create(env.ctx, principal(owner), PlanInput{
			Name: "Plano", PricePerAccess: decimal.NewFromInt(p),
		})
		require.NoError(t, err)
	}

	price, err = env.svc.Plans.Effective(env.ctx, principal(owner))
	require.NoError(t, err)
	require.True(t, price.PricePerAccess.Valid)
	assert.True(t, decimal.NewFromInt(10).Equal(price.PricePerAccess.Decimal))

	_, err = env.svc.Plans.Effective(env.ctx, principal(env.seed.Admin()))
	assert.True(t, ierr.IsForbidden(err))
}
