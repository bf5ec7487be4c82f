package model

// Role is the closed set of account roles. Every authorization gate in
// internal/authz switches over all of them.
type Role string

const (
	RoleThriveAdmin  Role = "thrive_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleProvider     Role = "provider"
	RoleCollaborator Role = "collaborator"
)

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleThriveAdmin, RoleCompanyAdmin, RoleProvider, RoleCollaborator}
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleThriveAdmin, RoleCompanyAdmin, RoleProvider, RoleCollaborator:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
)

type CompanyStatus string

const (
	CompanyStatusPending CompanyStatus = "pending"
	CompanyStatusActive  CompanyStatus = "active"
)

type CollaboratorStatus string

const (
	CollaboratorStatusActive   CollaboratorStatus = "active"
	CollaboratorStatusInactive CollaboratorStatus = "inactive"
)

func (s CollaboratorStatus) Valid() bool {
	return s == CollaboratorStatusActive || s == CollaboratorStatusInactive
}

type GymStatus string

const (
	GymStatusPending GymStatus = "pending"
	GymStatusActive  GymStatus = "active"
)

// BillingStatus is the invoice state of a company for one billing period.
// A missing BillingHistory row means BillingStatusPending.
type BillingStatus string

const (
	BillingStatusPending BillingStatus = "pending"
	BillingStatusSent    BillingStatus = "sent"
)

func (s BillingStatus) Valid() bool {
	return s == BillingStatusPending || s == BillingStatusSent
}

// Label is the human readable status used in exported reports
func (s BillingStatus) Label() string {
	if s == BillingStatusSent {
		return "Billed"
	}
	return "Pending"
}
