package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/prometheus"
)

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres returns a Repository backed by db. Every call uses the caller's
// context so request cancellation reaches the driver.
func NewPostgres(db *gorm.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Users() UserRepository                 { return &userRepository{db: r.db} }
func (r *postgresRepository) Companies() CompanyRepository         { return &companyRepository{db: r.db} }
func (r *postgresRepository) Collaborators() CollaboratorRepository { return &collaboratorRepository{db: r.db} }
func (r *postgresRepository) Providers() ProviderRepository         { return &providerRepository{db: r.db} }
func (r *postgresRepository) Gyms() GymRepository                   { return &gymRepository{db: r.db} }
func (r *postgresRepository) Plans() PlanRepository                 { return &planRepository{db: r.db} }
func (r *postgresRepository) Accesses() AccessRepository           { return &accessRepository{db: r.db} }
func (r *postgresRepository) Billing() BillingRepository           { return &billingRepository{db: r.db} }

func (r *postgresRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	defer prometheus.TrackDBOperation("transaction")()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&postgresRepository{db: tx})
	})
}

// translate classifies a gorm/pgx error. notFoundHint is the message shown to
// callers when the row does not exist.
func translate(err error, op, notFoundHint string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ierr.WithError(err).
			WithHint(notFoundHint).
			Mark(ierr.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ierr.WithError(err).
			WithHint("Registro já existe").
			Mark(ierr.ErrConflict)
	}
	return ierr.WithError(errors.Wrap(err, op)).
		Mark(ierr.ErrDatabase)
}
