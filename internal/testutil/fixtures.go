package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thrivecorp/platform/internal/model"
)

// DefaultPassword is the clear text password of every seeded user
const DefaultPassword = "senha-segura-123"

// Seeder creates fixture rows through the repository contracts
type Seeder struct {
	t    testing.TB
	repo *InMemoryRepository
	hash string
	n    int
}

func NewSeeder(t testing.TB, repo *InMemoryRepository) *Seeder {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &Seeder{t: t, repo: repo, hash: string(hash)}
}

func (s *Seeder) User(role model.Role, status model.UserStatus, first, last string) *model.User {
	s.n++
	local := strings.ToLower(strings.ReplaceAll(first, " ", "-"))
	u := &model.User{
		Email:        fmt.Sprintf("%s.%s.%d@example.com", local, role, s.n),
		PasswordHash: s.hash,
		Role:         role,
		Status:       status,
		FirstName:    first,
		LastName:     last,
	}
	require.NoError(s.t, s.repo.Users().Create(context.Background(), u))
	return u
}

func (s *Seeder) Admin() *model.User {
	return s.User(model.RoleThriveAdmin, model.UserStatusActive, "Thrive", "Admin")
}

// Company creates an active company and its active admin user
func (s *Seeder) Company(name string) (*model.Company, *model.User) {
	admin := s.User(model.RoleCompanyAdmin, model.UserStatusActive, name, "Admin")
	c := &model.Company{
		Name:    name,
		CNPJ:    fmt.Sprintf("%014d", admin.ID),
		Address: "Rua " + name,
		AdminID: admin.ID,
		Status:  model.CompanyStatusActive,
	}
	require.NoError(s.t, s.repo.Companies().Create(context.Background(), c))
	return c, admin
}

// Collaborator creates an active collaborator user linked to companyID
func (s *Seeder) Collaborator(companyID uint, first, last string, status model.CollaboratorStatus) *model.User {
	u := s.User(model.RoleCollaborator, model.UserStatusActive, first, last)
	c := &model.Collaborator{UserID: u.ID, CompanyID: companyID, Status: status}
	require.NoError(s.t, s.repo.Collaborators().Create(context.Background(), c))
	return u
}

// Provider creates a provider and its user with the given status
func (s *Seeder) Provider(name string, status model.UserStatus) (*model.Provider, *model.User) {
	u := s.User(model.RoleProvider, status, name, "Owner")
	p := &model.Provider{UserID: u.ID, Name: name, CNPJ: fmt.Sprintf("%014d", u.ID)}
	require.NoError(s.t, s.repo.Providers().Create(context.Background(), p))
	return p, u
}

func (s *Seeder) Gym(providerID uint, name string, status model.GymStatus) *model.Gym {
	g := &model.Gym{ProviderID: providerID, Name: name, Address: "Av. " + name, Status: status}
	require.NoError(s.t, s.repo.Gyms().Create(context.Background(), g))
	return g
}

func (s *Seeder) Plan(providerID uint, price string) *model.Plan {
	p := &model.Plan{
		ProviderID:     providerID,
		Name:           "Plano " + price,
		PricePerAccess: decimal.RequireFromString(price),
	}
	require.NoError(s.t, s.repo.Plans().Create(context.Background(), p))
	return p
}

func (s *Seeder) Access(userID, gymID uint, at time.Time) *model.Access {
	a := &model.Access{UserID: userID, GymID: gymID, AccessTimestamp: at.UTC()}
	require.NoError(s.t, s.repo.Accesses().Create(context.Background(), a))
	return a
}

// Scenario is the reference billing setup: company A with two active
// collaborators checking in at gym X of provider P (plan 15.00) five times
// in March 2024.
type Scenario struct {
	Admin         *model.User
	Company       *model.Company
	CompanyAdmin  *model.User
	Collaborators []*model.User
	Provider      *model.Provider
	ProviderUser  *model.User
	Gym           *model.Gym
	Plan          *model.Plan
}

func (s *Seeder) Scenario() *Scenario {
	sc := &Scenario{Admin: s.Admin()}
	sc.Company, sc.CompanyAdmin = s.Company("Company A")
	sc.Collaborators = []*model.User{
		s.Collaborator(sc.Company.ID, "Ana", "Souza", model.CollaboratorStatusActive),
		s.Collaborator(sc.Company.ID, "Bruno", "Lima", model.CollaboratorStatusActive),
	}
	sc.Provider, sc.ProviderUser = s.Provider("Provider P", model.UserStatusActive)
	sc.Gym = s.Gym(sc.Provider.ID, "Gym X", model.GymStatusActive)
	sc.Plan = s.Plan(sc.Provider.ID, "15.00")

	base := time.Date(2024, time.March, 4, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.Access(sc.Collaborators[0].ID, sc.Gym.ID, base.AddDate(0, 0, i))
	}
	for i := 0; i < 2; i++ {
		s.Access(sc.Collaborators[1].ID, sc.Gym.ID, base.AddDate(0, 0, 10+i))
	}
	return sc
}
