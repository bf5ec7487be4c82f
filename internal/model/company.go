package model

import (
	"time"
)

// Company is a customer of the platform. AdminID points to the single
// company_admin user that owns it.
type Company struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"type:varchar(255);not null"`
	CNPJ      string        `json:"cnpj" gorm:"column:cnpj;type:varchar(18);uniqueIndex"`
	Address   string        `json:"address" gorm:"type:text"`
	AdminID   uint          `json:"admin_id" gorm:"uniqueIndex;not null"`
	Status    CompanyStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Admin *User `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
}

func (Company) TableName() string { return "companies" }

// Collaborator links a collaborator user to the company employing them
type Collaborator struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	UserID    uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	CompanyID uint               `json:"company_id" gorm:"index;not null"`
	Status    CollaboratorStatus `json:"status" gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Collaborator) TableName() string { return "collaborators" }
