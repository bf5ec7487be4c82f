package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
)

func TestInMemoryRepository_Transaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit keeps writes", func(t *testing.T) {
		repo := NewInMemoryRepository()
		err := repo.Transaction(ctx, func(tx repository.Repository) error {
			return tx.Users().Create(ctx, &model.User{Email: "a@example.com", Role: model.RoleCollaborator})
		})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.UserCount())
	})

	t.Run("error restores snapshot", func(t *testing.T) {
		repo := NewInMemoryRepository()
		seed := NewSeeder(t, repo)
		seed.Admin()

		boom := errors.New("boom")
		err := repo.Transaction(ctx, func(tx repository.Repository) error {
			require.NoError(t, tx.Users().Create(ctx, &model.User{Email: "b@example.com", Role: model.RoleProvider}))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, repo.UserCount())
	})

	t.Run("injected fault is a database error", func(t *testing.T) {
		repo := NewInMemoryRepository()
		repo.FailOn("users.create", errors.New("connection reset"))
		err := repo.Users().Create(ctx, &model.User{Email: "c@example.com"})
		require.Error(t, err)
		assert.Equal(t, 500, ierr.HTTPStatus(err))

		repo.ClearFaults()
		assert.NoError(t, repo.Users().Create(ctx, &model.User{Email: "c@example.com"}))
	})
}

func TestInMemoryRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	require.NoError(t, repo.Users().Create(ctx, &model.User{Email: "dup@example.com"}))
	err := repo.Users().Create(ctx, &model.User{Email: "dup@example.com"})
	assert.True(t, ierr.IsConflict(err))
}

func TestInMemoryRepository_MonthlyReport(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	seed := NewSeeder(t, repo)
	sc := seed.Scenario()

	rows, err := repo.Billing().MonthlyReport(ctx, 2024, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, sc.Company.ID, rows[0].CompanyID)
	assert.Equal(t, int64(5), rows[0].TotalAccesses)
	assert.True(t, decimal.RequireFromString("75").Equal(rows[0].TotalCost))
	assert.Equal(t, model.BillingStatusPending, rows[0].BillingStatus)

	t.Run("invalid month yields no rows", func(t *testing.T) {
		rows, err := repo.Billing().MonthlyReport(ctx, 2024, 13)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("inactive collaborators are not billed", func(t *testing.T) {
		c, _ := seed.Company("Company B")
		u := seed.Collaborator(c.ID, "Carla", "Reis", model.CollaboratorStatusInactive)
		seed.Access(u.ID, sc.Gym.ID, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC))

		rows, err := repo.Billing().MonthlyReport(ctx, 2024, 3)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("provider without plan contributes zero cost", func(t *testing.T) {
		p, _ := seed.Provider("Provider Q", model.UserStatusActive)
		g := seed.Gym(p.ID, "Gym Y", model.GymStatusActive)
		seed.Access(sc.Collaborators[0].ID, g.ID, time.Date(2024, 3, 28, 9, 0, 0, 0, time.UTC))

		rows, err := repo.Billing().MonthlyReport(ctx, 2024, 3)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(6), rows[0].TotalAccesses)
		assert.True(t, decimal.RequireFromString("75").Equal(rows[0].TotalCost))
	})
}

func TestInMemoryRepository_FirstByProvider(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	seed := NewSeeder(t, repo)
	p, _ := seed.Provider("Provider P", model.UserStatusActive)
	first := seed.Plan(p.ID, "10.00")
	seed.Plan(p.ID, "20.00")

	got, err := repo.Plans().FirstByProvider(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.Plans().FirstByProvider(ctx, p.ID+100)
	assert.True(t, ierr.IsNotFound(err))
}
