package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider owns gyms and prices them through plans
type Provider struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CNPJ      string    `json:"cnpj" gorm:"column:cnpj;type:varchar(18)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Provider) TableName() string { return "providers" }

type Gym struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProviderID uint      `json:"provider_id" gorm:"index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	Address    string    `json:"address" gorm:"type:text"`
	Status     GymStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Gym) TableName() string { return "gyms" }

// Plan is a provider's price per access. Several plans may exist for one
// provider; pricing only ever uses the one with the lowest id.
type Plan struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	ProviderID     uint            `json:"provider_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"type:varchar(255);not null"`
	Description    string          `json:"description" gorm:"type:text"`
	PricePerAccess decimal.Decimal `json:"price_per_access" gorm:"type:numeric(10,2);not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Plan) TableName() string { return "plans" }
