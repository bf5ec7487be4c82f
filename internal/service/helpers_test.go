package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thrivecorp/platform/internal/authz"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/testutil"
	"github.com/thrivecorp/platform/pkg/config"
	"github.com/thrivecorp/platform/pkg/jwtutil"
)

var fixedNow = time.Date(2024, time.April, 2, 12, 30, 0, 0, time.UTC)

type testEnv struct {
	ctx  context.Context
	repo *testutil.InMemoryRepository
	seed *testutil.Seeder
	svc  *Services
	jwt  *jwtutil.JWTUtil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := testutil.NewInMemoryRepository()
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	svc := New(repo, jwt)
	svc.Auth.bcryptCost = bcrypt.MinCost
	svc.Companies.bcryptCost = bcrypt.MinCost
	clock := func() time.Time { return fixedNow }
	svc.Billing.now = clock
	svc.Accesses.now = clock

	return &testEnv{
		ctx:  context.Background(),
		repo: repo,
		seed: testutil.NewSeeder(t, repo),
		svc:  svc,
		jwt:  jwt,
	}
}

func principal(u *model.User) authz.Principal {
	return authz.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}
