package model

import (
	"time"
)

// User represents an account of any role
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role       `json:"role" gorm:"type:varchar(32);not null;index"`
	Status       UserStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	FirstName    string     `json:"first_name" gorm:"type:varchar(100)"`
	LastName     string     `json:"last_name" gorm:"type:varchar(100)"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// FullName joins first and last name
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
