package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/validator"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

// MinBillingYear is the oldest period a billing status can be written for
const MinBillingYear = 2000

type BillingService struct {
	repo     repository.Repository
	resolver *authz.Resolver
	now      func() time.Time
}

func NewBillingService(repo repository.Repository, resolver *authz.Resolver, now func() time.Time) *BillingService {
	return &BillingService{repo: repo, resolver: resolver, now: now}
}

// MonthlyReport returns one invoice line per company with accesses in the
// period, ordered by company name. Months outside 1..12 match no access and
// give an empty report.
func (s *BillingService) MonthlyReport(ctx context.Context, p authz.Principal, year, month int) ([]*model.BillingReportRow, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}
	return s.repo.Billing().MonthlyReport(ctx, year, month)
}

// CompanyAccessDetails lists the accesses of the caller's company in the
// period, most recent first, priced with the providers' current plans.
func (s *BillingService) CompanyAccessDetails(ctx context.Context, p authz.Principal, year, month int) ([]*model.AccessDetailRow, error) {
	company, err := s.resolver.ResolveCompany(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Accesses().CompanyDetails(ctx, company.ID, year, month)
}

// SetStatusInput is the body of a billing status change. Status defaults to
// sent when empty.
type SetStatusInput struct {
	CompanyID uint                `json:"companyId" validate:"required"`
	Year      int                 `json:"year" validate:"required"`
	Month     int                 `json:"month" validate:"required"`
	Status    model.BillingStatus `json:"status"`
}

func (in *SetStatusInput) Validate() error {
	if in.Status == "" {
		in.Status = model.BillingStatusSent
	}
	if err := validator.ValidateRequest(in); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return ierr.NewError(fmt.Sprintf("invalid billing status %q", in.Status)).
			WithHint("Status inválido. Use 'sent' ou 'pending'").
			Mark(ierr.ErrValidation)
	}
	if in.Year < MinBillingYear || in.Month < 1 || in.Month > 12 {
		return ierr.NewError(fmt.Sprintf("invalid billing period %d-%d", in.Year, in.Month)).
			WithHint("Período de faturamento inválido").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SetStatus writes the billing status of a company for a period. The write
// is an upsert on (company, year, month); there is no transition guard so a
// sent period may go back to pending.
func (s *BillingService) SetStatus(ctx context.Context, p authz.Principal, in SetStatusInput) (*model.BillingHistory, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.Companies().Get(ctx, in.CompanyID); err != nil {
		return nil, err
	}

	history := &model.BillingHistory{
		CompanyID:    in.CompanyID,
		BillingYear:  in.Year,
		BillingMonth: in.Month,
		Status:       in.Status,
	}
	if in.Status == model.BillingStatusSent {
		sentAt := s.now()
		history.SentAt = &sentAt
	}

	if err := s.repo.Billing().UpsertStatus(ctx, history); err != nil {
		return nil, err
	}

	prometheus.RecordBillingStatus(string(in.Status))
	logger.Ctx(ctx).Info("billing status updated",
		zap.Uint("admin_id", p.UserID),
		zap.String("admin_email", p.Email),
		zap.Uint("company_id", in.CompanyID),
		zap.Int("year", in.Year),
		zap.Int("month", in.Month),
		zap.String("status", string(in.Status)))

	return history, nil
}

// MarkSent is SetStatus fixed to sent
func (s *BillingService) MarkSent(ctx context.Context, p authz.Principal, companyID uint, year, month int) (*model.BillingHistory, error) {
	return s.SetStatus(ctx, p, SetStatusInput{
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Status:    model.BillingStatusSent,
	})
}
