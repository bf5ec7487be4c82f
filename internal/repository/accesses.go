package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/prometheus"
)

// firstPlansCTE resolves the price per access of every provider: the plan
// with the lowest id wins, later plans are ignored.
const firstPlansCTE = `first_plans AS (
	SELECT DISTINCT ON (provider_id) provider_id, price_per_access
	FROM plans
	ORDER BY provider_id, id
)`

// periodFilter compares the calendar components of the access timestamp, so
// an out of range month simply matches nothing.
const periodFilter = `EXTRACT(YEAR FROM a.access_timestamp) = ? AND EXTRACT(MONTH FROM a.access_timestamp) = ?`

const companyDetailsQuery = `WITH ` + firstPlansCTE + `
SELECT
	a.id AS access_id,
	a.access_timestamp AS timestamp,
	u.first_name,
	u.last_name,
	g.name AS gym_name,
	fp.price_per_access
FROM accesses a
JOIN users u ON u.id = a.user_id
JOIN collaborators col ON col.user_id = u.id AND col.status = 'active'
JOIN gyms g ON g.id = a.gym_id
JOIN providers p ON p.id = g.provider_id
LEFT JOIN first_plans fp ON fp.provider_id = p.id
WHERE col.company_id = ? AND ` + periodFilter + `
ORDER BY a.access_timestamp DESC, a.id DESC`

const companyUsageQuery = `WITH ` + firstPlansCTE + `
SELECT
	u.id AS user_id,
	u.first_name,
	u.last_name,
	COUNT(a.id) AS total_accesses,
	COALESCE(SUM(fp.price_per_access), 0) AS total_cost
FROM accesses a
JOIN users u ON u.id = a.user_id
JOIN collaborators col ON col.user_id = u.id AND col.status = 'active'
JOIN gyms g ON g.id = a.gym_id
JOIN providers p ON p.id = g.provider_id
LEFT JOIN first_plans fp ON fp.provider_id = p.id
WHERE col.company_id = ? AND ` + periodFilter + `
GROUP BY u.id, u.first_name, u.last_name
ORDER BY u.first_name COLLATE "C", u.last_name COLLATE "C", u.id`

const providerReportQuery = `WITH ` + firstPlansCTE + `
SELECT
	a.id AS access_id,
	a.access_timestamp AS timestamp,
	u.first_name,
	u.last_name,
	c.name AS company_name,
	g.name AS gym_name,
	fp.price_per_access
FROM accesses a
JOIN users u ON u.id = a.user_id
JOIN collaborators col ON col.user_id = u.id
JOIN companies c ON c.id = col.company_id
JOIN gyms g ON g.id = a.gym_id
LEFT JOIN first_plans fp ON fp.provider_id = g.provider_id
WHERE g.provider_id = ? AND ` + periodFilter + `
ORDER BY a.access_timestamp DESC, a.id DESC`

type accessRepository struct {
	db *gorm.DB
}

func (r *accessRepository) Create(ctx context.Context, access *model.Access) error {
	defer prometheus.TrackDBOperation("access_create")()
	return translate(r.db.WithContext(ctx).Create(access).Error, "create access", gymNotFound)
}

func (r *accessRepository) CompanyDetails(ctx context.Context, companyID uint, year, month int) ([]*model.AccessDetailRow, error) {
	defer prometheus.TrackDBOperation("report_company_details")()
	rows := make([]*model.AccessDetailRow, 0)
	if err := r.db.WithContext(ctx).Raw(companyDetailsQuery, companyID, year, month).Scan(&rows).Error; err != nil {
		return nil, translate(err, "company details report", companyNotFound)
	}
	return rows, nil
}

func (r *accessRepository) CompanyUsage(ctx context.Context, companyID uint, year, month int) ([]*model.CollaboratorUsageRow, error) {
	defer prometheus.TrackDBOperation("report_company_usage")()
	rows := make([]*model.CollaboratorUsageRow, 0)
	if err := r.db.WithContext(ctx).Raw(companyUsageQuery, companyID, year, month).Scan(&rows).Error; err != nil {
		return nil, translate(err, "company usage report", companyNotFound)
	}
	return rows, nil
}

func (r *accessRepository) ProviderReport(ctx context.Context, providerID uint, year, month int) ([]*model.ProviderAccessRow, error) {
	defer prometheus.TrackDBOperation("report_provider")()
	rows := make([]*model.ProviderAccessRow, 0)
	if err := r.db.WithContext(ctx).Raw(providerReportQuery, providerID, year, month).Scan(&rows).Error; err != nil {
		return nil, translate(err, "provider report", providerNotFound)
	}
	return rows, nil
}
