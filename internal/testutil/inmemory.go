// Package testutil provides an in-memory implementation of the repository
// contracts. Report queries follow the same join and filter rules as the
// Postgres implementation.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
)

type billingKey struct {
	companyID uint
	year      int
	month     int
}

// tables holds every row by value so a shallow map copy is a snapshot
type tables struct {
	users         map[uint]model.User
	companies     map[uint]model.Company
	collaborators map[uint]model.Collaborator
	providers     map[uint]model.Provider
	gyms          map[uint]model.Gym
	plans         map[uint]model.Plan
	accesses      map[uint]model.Access
	billing       map[billingKey]model.BillingHistory
	seq           uint
}

func newTables() *tables {
	return &tables{
		users:         map[uint]model.User{},
		companies:     map[uint]model.Company{},
		collaborators: map[uint]model.Collaborator{},
		providers:     map[uint]model.Provider{},
		gyms:          map[uint]model.Gym{},
		plans:         map[uint]model.Plan{},
		accesses:      map[uint]model.Access{},
		billing:       map[billingKey]model.BillingHistory{},
	}
}

func (t *tables) clone() *tables {
	return &tables{
		users:         lo.Assign(t.users),
		companies:     lo.Assign(t.companies),
		collaborators: lo.Assign(t.collaborators),
		providers:     lo.Assign(t.providers),
		gyms:          lo.Assign(t.gyms),
		plans:         lo.Assign(t.plans),
		accesses:      lo.Assign(t.accesses),
		billing:       lo.Assign(t.billing),
		seq:           t.seq,
	}
}

// InMemoryRepository implements repository.Repository
type InMemoryRepository struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	data   *tables
	faults map[string]error
	now    func() time.Time
}

var _ repository.Repository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		data:   newTables(),
		faults: map[string]error{},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// FailOn makes every later call of op return err as a database failure.
// Operation names are "<table>.<method>", e.g. "users.delete".
func (r *InMemoryRepository) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults[op] = err
}

// ClearFaults removes every injected failure
func (r *InMemoryRepository) ClearFaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults = map[string]error{}
}

// fault must be called with mu held
func (r *InMemoryRepository) fault(op string) error {
	err, ok := r.faults[op]
	if !ok {
		return nil
	}
	return ierr.WithError(err).
		WithHint(ierr.GenericMessage).
		Mark(ierr.ErrDatabase)
}

func (r *InMemoryRepository) nextID() uint {
	r.data.seq++
	return r.data.seq
}

func (r *InMemoryRepository) Users() repository.UserRepository { return &memUsers{r} }
func (r *InMemoryRepository) Companies() repository.CompanyRepository {
	return &memCompanies{r}
}
func (r *InMemoryRepository) Collaborators() repository.CollaboratorRepository {
	return &memCollaborators{r}
}
func (r *InMemoryRepository) Providers() repository.ProviderRepository { return &memProviders{r} }
func (r *InMemoryRepository) Gyms() repository.GymRepository           { return &memGyms{r} }
func (r *InMemoryRepository) Plans() repository.PlanRepository         { return &memPlans{r} }
func (r *InMemoryRepository) Accesses() repository.AccessRepository   { return &memAccesses{r} }
func (r *InMemoryRepository) Billing() repository.BillingRepository   { return &memBilling{r} }

// Transaction snapshots every table and restores the snapshot when fn fails.
// Transactions are serialised; nesting is not supported.
func (r *InMemoryRepository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	if err := r.fault("transaction.begin"); err != nil {
		r.mu.Unlock()
		return err
	}
	snapshot := r.data.clone()
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.data = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

// Row counts used by tests to assert on side effects

func (r *InMemoryRepository) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.users)
}

func (r *InMemoryRepository) CompanyCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.companies)
}

func (r *InMemoryRepository) CollaboratorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.collaborators)
}

func (r *InMemoryRepository) ProviderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.providers)
}

// BillingHistory returns every stored billing history row
func (r *InMemoryRepository) BillingHistory() []model.BillingHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Values(r.data.billing)
}

func conflict(msg string) error {
	return ierr.NewError(msg).
		WithHint("Registro já existe").
		Mark(ierr.ErrConflict)
}

func notFound(msg, hint string) error {
	return ierr.NewError(msg).
		WithHint(hint).
		Mark(ierr.ErrNotFound)
}
