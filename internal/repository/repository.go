// Package repository defines persistence contracts for the platform and their
// gorm/Postgres implementation.
package repository

import (
	"context"

	"github.com/thrivecorp/platform/internal/model"
)

// Repository groups the per-entity repositories behind one unit of work.
type Repository interface {
	Users() UserRepository
	Companies() CompanyRepository
	Collaborators() CollaboratorRepository
	Providers() ProviderRepository
	Gyms() GymRepository
	Plans() PlanRepository
	Accesses() AccessRepository
	Billing() BillingRepository

	// Transaction runs fn atomically. Any error returned by fn, or raised by
	// a statement inside it, rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListByStatus(ctx context.Context, status model.UserStatus) ([]*model.User, error)
	UpdateStatus(ctx context.Context, id uint, status model.UserStatus) error
	Delete(ctx context.Context, ids ...uint) error
}

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	Get(ctx context.Context, id uint) (*model.Company, error)
	GetByAdminID(ctx context.Context, adminID uint) (*model.Company, error)
	List(ctx context.Context) ([]*model.Company, error)
	UpdateStatus(ctx context.Context, id uint, status model.CompanyStatus) error
	Delete(ctx context.Context, id uint) error
}

type CollaboratorRepository interface {
	Create(ctx context.Context, collaborator *model.Collaborator) error
	Get(ctx context.Context, id uint) (*model.Collaborator, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Collaborator, error)
	// ListByCompany returns the company's collaborators with User loaded
	ListByCompany(ctx context.Context, companyID uint) ([]*model.Collaborator, error)
	UpdateStatus(ctx context.Context, id uint, status model.CollaboratorStatus) error
	DeleteByCompany(ctx context.Context, companyID uint) error
}

type ProviderRepository interface {
	Create(ctx context.Context, provider *model.Provider) error
	Get(ctx context.Context, id uint) (*model.Provider, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Provider, error)
	Delete(ctx context.Context, id uint) error
}

// GymFilter narrows gym listings; nil fields are ignored
type GymFilter struct {
	ProviderID *uint
	Status     *model.GymStatus
}

type GymRepository interface {
	Create(ctx context.Context, gym *model.Gym) error
	Get(ctx context.Context, id uint) (*model.Gym, error)
	List(ctx context.Context, filter GymFilter) ([]*model.Gym, error)
	UpdateStatus(ctx context.Context, id uint, status model.GymStatus) error
	Delete(ctx context.Context, id uint) error
	CountByProvider(ctx context.Context, providerID uint) (int64, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *model.Plan) error
	Get(ctx context.Context, id uint) (*model.Plan, error)
	// ListByProvider returns plans ordered by id ascending
	ListByProvider(ctx context.Context, providerID uint) ([]*model.Plan, error)
	Update(ctx context.Context, plan *model.Plan) error
	Delete(ctx context.Context, id uint) error
	// FirstByProvider returns the provider's lowest-id plan, the one used
	// for pricing. Not found when the provider has no plan.
	FirstByProvider(ctx context.Context, providerID uint) (*model.Plan, error)
}

type AccessRepository interface {
	Create(ctx context.Context, access *model.Access) error
	// CompanyDetails lists one row per access of the company's active
	// collaborators in the period, most recent first.
	CompanyDetails(ctx context.Context, companyID uint, year, month int) ([]*model.AccessDetailRow, error)
	// CompanyUsage aggregates the same accesses per collaborator.
	CompanyUsage(ctx context.Context, companyID uint, year, month int) ([]*model.CollaboratorUsageRow, error)
	// ProviderReport lists accesses at the provider's gyms in the period.
	ProviderReport(ctx context.Context, providerID uint, year, month int) ([]*model.ProviderAccessRow, error)
}

type BillingRepository interface {
	// MonthlyReport aggregates the period's accesses per company. Companies
	// without accesses in the period are absent from the result.
	MonthlyReport(ctx context.Context, year, month int) ([]*model.BillingReportRow, error)
	// UpsertStatus inserts or overwrites the (company, year, month) row
	UpsertStatus(ctx context.Context, history *model.BillingHistory) error
	Get(ctx context.Context, companyID uint, year, month int) (*model.BillingHistory, error)
}
