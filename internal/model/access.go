package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Access is one check-in of a user at a gym. Rows are never updated.
type Access struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	GymID           uint      `json:"gym_id" gorm:"index;not null"`
	AccessTimestamp time.Time `json:"access_timestamp" gorm:"column:access_timestamp;not null;index"`
}

func (Access) TableName() string { return "accesses" }

// BillingHistory stores the invoice status of a company for a billing period
type BillingHistory struct {
	CompanyID    uint          `json:"company_id" gorm:"primaryKey;autoIncrement:false"`
	BillingYear  int           `json:"billing_year" gorm:"primaryKey;autoIncrement:false"`
	BillingMonth int           `json:"billing_month" gorm:"primaryKey;autoIncrement:false"`
	Status       BillingStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	SentAt       *time.Time    `json:"sent_at"`
}

func (BillingHistory) TableName() string { return "billing_history" }

// BillingReportRow is one invoice line of the monthly billing report
type BillingReportRow struct {
	CompanyID     uint            `json:"company_id"`
	CompanyName   string          `json:"company_name"`
	TotalAccesses int64           `json:"total_accesses"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	BillingStatus BillingStatus   `json:"billing_status"`
}

// MarshalJSON writes total_cost as a number with two decimals, e.g. 75.00
func (r BillingReportRow) MarshalJSON() ([]byte, error) {
	type row BillingReportRow
	return json.Marshal(struct {
		row
		TotalCost json.Number `json:"total_cost"`
	}{row(r), money(r.TotalCost)})
}

// AccessDetailRow is one access of a company's collaborator, priced with the
// provider's current plan
type AccessDetailRow struct {
	AccessID       uint                `json:"access_id"`
	Timestamp      time.Time           `json:"timestamp"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	GymName        string              `json:"gym_name"`
	PricePerAccess decimal.NullDecimal `json:"price_per_access"`
}

// ProviderAccessRow is one access at a provider's gym
type ProviderAccessRow struct {
	AccessID       uint                `json:"access_id"`
	Timestamp      time.Time           `json:"timestamp"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	CompanyName    string              `json:"company_name"`
	GymName        string              `json:"gym_name"`
	PricePerAccess decimal.NullDecimal `json:"price_per_access"`
}

// CollaboratorUsageRow summarises a collaborator's accesses in a period
type CollaboratorUsageRow struct {
	UserID        uint            `json:"user_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	TotalAccesses int64           `json:"total_accesses"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

func (r CollaboratorUsageRow) MarshalJSON() ([]byte, error) {
	type row CollaboratorUsageRow
	return json.Marshal(struct {
		row
		TotalCost json.Number `json:"total_cost"`
	}{row(r), money(r.TotalCost)})
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
