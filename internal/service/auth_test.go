package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/testutil"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seed.Admin()

	reg, err := env.svc.Auth.RegisterProvider(env.ctx, RegisterProviderInput{
		AccountInput: AccountInput{Email: "dono@fitco.com", Password: "senha-segura", FirstName: "Davi"},
		ProviderName: "FitCo",
		CNPJ:         "98.765.432/0001-10",
	})
	require.NoError(t, err)
	assert.Nil(t, reg.Gym)
	provider := reg.Provider

	login := LoginInput{Email: "dono@fitco.com", Password: "senha-segura"}

	_, err = env.svc.Auth.Login(env.ctx, login)
	assert.True(t, ierr.IsForbidden(err), "pending accounts cannot log in")

	pending, err := env.svc.Auth.ListPending(env.ctx, principal(admin))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, provider.UserID, pending[0].ID)

	_, err = env.svc.Auth.ApproveUser(env.ctx, principal(admin), provider.UserID)
	require.NoError(t, err)

	res, err := env.svc.Auth.Login(env.ctx, login)
	require.NoError(t, err)
	assert.Equal(t, model.RoleProvider, res.User.Role)

	claims, err := env.jwt.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, provider.UserID, claims.UserID)
	assert.Equal(t, string(model.RoleProvider), claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	user := env.seed.Admin()

	tests := []struct {
		name  string
		input LoginInput
		check func(error) bool
	}{
		{"wrong password", LoginInput{Email: user.Email, Password: "errada"}, func(err error) bool {
			return ierr.HTTPStatus(err) == 401
		}},
		{"unknown email", LoginInput{Email: "ninguem@example.com", Password: testutil.DefaultPassword}, func(err error) bool {
			return ierr.HTTPStatus(err) == 401
		}},
		{"missing password", LoginInput{Email: user.Email}, ierr.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Auth.Login(env.ctx, tt.input)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	res, err := env.svc.Auth.Login(env.ctx, LoginInput{Email: user.Email, Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthService_RegisterCompanyIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	env.repo.FailOn("companies.create", errors.New("disk full"))

	_, err := env.svc.Auth.RegisterCompany(env.ctx, RegisterCompanyInput{
		AccountInput: AccountInput{Email: "rh@acme.com", Password: "senha-segura", FirstName: "Rita"},
		CompanyName:  "Acme",
		CNPJ:         "12.345.678/0001-90",
	})
	require.Error(t, err)
	assert.Equal(t, 0, env.repo.UserCount())
	assert.Equal(t, 0, env.repo.CompanyCount())
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	in := RegisterCompanyInput{
		AccountInput: AccountInput{Email: "rh@acme.com", Password: "senha-segura", FirstName: "Rita"},
		CompanyName:  "Acme",
		CNPJ:         "12.345.678/0001-90",
	}
	_, err := env.svc.Auth.RegisterCompany(env.ctx, in)
	require.NoError(t, err)

	in.CNPJ = "11.111.111/0001-11"
	in.Email = "RH@acme.com"
	_, err = env.svc.Auth.RegisterCompany(env.ctx, in)
	assert.True(t, ierr.IsConflict(err))
}

func TestAuthService_CreateAdmin(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.svc.Auth.CreateAdmin(env.ctx, AccountInput{Email: "root@thrivecorp.com", Password: "senha-segura", FirstName: "Root"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleThriveAdmin, u.Role)
	assert.Equal(t, model.UserStatusActive, u.Status)

	_, err = env.svc.Auth.CreateAdmin(env.ctx, AccountInput{Email: "x", Password: "curta"})
	assert.True(t, ierr.IsValidation(err))
}

func TestAuthService_RegisterProviderWithGym(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seed.Admin()

	reg, err := env.svc.Auth.RegisterProvider(env.ctx, RegisterProviderInput{
		AccountInput: AccountInput{Email: "dono@fitco.com", Password: "senha-segura", FirstName: "Davi"},
		ProviderName: "FitCo",
		CNPJ:         "98.765.432/0001-10",
		Gym:          &GymInput{Name: "FitCo Centro", Address: "Rua A, 100"},
	})
	require.NoError(t, err)
	require.NotNil(t, reg.Gym)
	assert.Equal(t, reg.Provider.ID, reg.Gym.ProviderID)
	assert.Equal(t, model.GymStatusPending, reg.Gym.Status)

	login := LoginInput{Email: "dono@fitco.com", Password: "senha-segura"}
	_, err = env.svc.Auth.Login(env.ctx, login)
	assert.True(t, ierr.IsForbidden(err))

	_, err = env.svc.Gyms.Approve(env.ctx, principal(admin), reg.Gym.ID)
	require.NoError(t, err)

	res, err := env.svc.Auth.Login(env.ctx, login)
	require.NoError(t, err)
	assert.Equal(t, reg.Provider.UserID, res.User.ID)

	t.Run("gym fields are validated", func(t *testing.T) {
		users := env.repo.UserCount()
		_, err := env.svc.Auth.RegisterProvider(env.ctx, RegisterProviderInput{
			AccountInput: AccountInput{Email: "outro@gymcorp.com", Password: "senha-segura", FirstName: "Eva"},
			ProviderName: "GymCorp",
			CNPJ:         "11.222.333/0001-44",
			Gym:          &GymInput{Name: "Sem endereço"},
		})
		assert.True(t, ierr.IsValidation(err))
		assert.Equal(t, users, env.repo.UserCount())
	})

	t.Run("gym failure rolls back the registration", func(t *testing.T) {
		users, providers := env.repo.UserCount(), env.repo.ProviderCount()
		env.repo.FailOn("gyms.create", errors.New("disk full"))
		t.Cleanup(env.repo.ClearFaults)

		_, err := env.svc.Auth.RegisterProvider(env.ctx, RegisterProviderInput{
			AccountInput: AccountInput{Email: "terceiro@gymcorp.com", Password: "senha-segura", FirstName: "Rui"},
			ProviderName: "GymCorp",
			CNPJ:         "11.222.333/0001-44",
			Gym:          &GymInput{Name: "GymCorp Sul", Address: "Av. B, 200"},
		})
		assert.Equal(t, 500, ierr.HTTPStatus(err))
		assert.Equal(t, users, env.repo.UserCount())
		assert.Equal(t, providers, env.repo.ProviderCount())
	})
}
