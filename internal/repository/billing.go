package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/prometheus"
)

const billingNotFound = "Histórico de faturamento não encontrado"

// monthlyBillingQuery builds one invoice line per company with accesses in
// the period. Only accesses of active collaborators are billed; a company
// without billing history for the period reads as pending.
const monthlyBillingQuery = `WITH ` + firstPlansCTE + `
SELECT
	c.id AS company_id,
	c.name AS company_name,
	COUNT(a.id) AS total_accesses,
	COALESCE(SUM(fp.price_per_access), 0) AS total_cost,
	COALESCE(bh.status, 'pending') AS billing_status
FROM accesses a
JOIN users u ON u.id = a.user_id
JOIN collaborators col ON col.user_id = u.id AND col.status = 'active'
JOIN companies c ON c.id = col.company_id
JOIN gyms g ON g.id = a.gym_id
JOIN providers p ON p.id = g.provider_id
LEFT JOIN first_plans fp ON fp.provider_id = p.id
LEFT JOIN billing_history bh
	ON bh.company_id = c.id AND bh.billing_year = ? AND bh.billing_month = ?
WHERE ` + periodFilter + `
GROUP BY c.id, c.name, bh.status
ORDER BY c.name COLLATE "C", c.id`

type billingRepository struct {
	db *gorm.DB
}

func (r *billingRepository) MonthlyReport(ctx context.Context, year, month int) ([]*model.BillingReportRow, error) {
	defer prometheus.TrackDBOperation("report_monthly_billing")()
	rows := make([]*model.BillingReportRow, 0)
	err := r.db.WithContext(ctx).
		Raw(monthlyBillingQuery, year, month, year, month).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "monthly billing report", billingNotFound)
	}
	return rows, nil
}

func (r *billingRepository) UpsertStatus(ctx context.Context, history *model.BillingHistory) error {
	defer prometheus.TrackDBOperation("billing_upsert")()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "billing_year"},
				{Name: "billing_month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"status", "sent_at"}),
		}).
		Create(history).Error
	return translate(err, "upsert billing status", billingNotFound)
}

func (r *billingRepository) Get(ctx context.Context, companyID uint, year, month int) (*model.BillingHistory, error) {
	defer prometheus.TrackDBOperation("billing_get")()
	var h model.BillingHistory
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND billing_year = ? AND billing_month = ?", companyID, year, month).
		Take(&h).Error
	if err != nil {
		return nil, translate(err, "get billing history", billingNotFound)
	}
	return &h, nil
}
