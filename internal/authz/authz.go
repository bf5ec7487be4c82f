// Package authz holds the role gates and the scope resolution that run before
// any data access.
package authz

import (
	"context"
	"fmt"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
)

// Principal is the authenticated caller, taken from the JWT
type Principal struct {
	UserID uint
	Email  string
	Role   model.Role
}

type Gate int

const (
	// GateAdminOnly guards billing status writes, the cross company billing
	// report and approval/deletion of companies and gyms.
	GateAdminOnly Gate = iota
	GateCompanyScoped
	GateProviderScoped
	GateCollaborator
	GateGymDeletion
	GateGymListing
	GateAuthenticated
)

// Gates returns every gate
func Gates() []Gate {
	return []Gate{
		GateAdminOnly,
		GateCompanyScoped,
		GateProviderScoped,
		GateCollaborator,
		GateGymDeletion,
		GateGymListing,
		GateAuthenticated,
	}
}

func (g Gate) String() string {
	switch g {
	case GateAdminOnly:
		return "admin_only"
	case GateCompanyScoped:
		return "company_scoped"
	case GateProviderScoped:
		return "provider_scoped"
	case GateCollaborator:
		return "collaborator"
	case GateGymDeletion:
		return "gym_deletion"
	case GateGymListing:
		return "gym_listing"
	case GateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("gate(%d)", int(g))
}

// Allows reports whether role may pass gate. Every gate lists every role so
// a new role has to be placed explicitly; unknown roles and gates are denied.
func Allows(gate Gate, role model.Role) bool {
	switch gate {
	case GateAdminOnly:
		switch role {
		case model.RoleThriveAdmin:
			return true
		case model.RoleCompanyAdmin, model.RoleProvider, model.RoleCollaborator:
			return false
		}
	case GateCompanyScoped:
		switch role {
		case model.RoleCompanyAdmin:
			return true
		case model.RoleThriveAdmin, model.RoleProvider, model.RoleCollaborator:
			return false
		}
	case GateProviderScoped:
		switch role {
		case model.RoleProvider:
			return true
		case model.RoleThriveAdmin, model.RoleCompanyAdmin, model.RoleCollaborator:
			return false
		}
	case GateCollaborator:
		switch role {
		case model.RoleCollaborator:
			return true
		case model.RoleThriveAdmin, model.RoleCompanyAdmin, model.RoleProvider:
			return false
		}
	case GateGymDeletion:
		switch role {
		case model.RoleThriveAdmin, model.RoleProvider:
			return true
		case model.RoleCompanyAdmin, model.RoleCollaborator:
			return false
		}
	case GateGymListing:
		switch role {
		case model.RoleThriveAdmin, model.RoleProvider, model.RoleCollaborator:
			return true
		case model.RoleCompanyAdmin:
			return false
		}
	case GateAuthenticated:
		switch role {
		case model.RoleThriveAdmin, model.RoleCompanyAdmin, model.RoleProvider, model.RoleCollaborator:
			return true
		}
	}
	return false
}

// Authorize returns a forbidden error unless p passes gate
func Authorize(p Principal, gate Gate) error {
	if Allows(gate, p.Role) {
		return nil
	}
	return ierr.NewError(fmt.Sprintf("role %q denied by gate %s", p.Role, gate)).
		WithHint("Acesso negado").
		Mark(ierr.ErrForbidden)
}

// Resolver maps a principal to the entity that scopes its queries
type Resolver struct {
	repo repository.Repository
}

func NewResolver(repo repository.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveCompany returns the company administered by p. The caller never
// chooses the company id.
func (r *Resolver) ResolveCompany(ctx context.Context, p Principal) (*model.Company, error) {
	if err := Authorize(p, GateCompanyScoped); err != nil {
		return nil, err
	}
	return r.repo.Companies().GetByAdminID(ctx, p.UserID)
}

// ResolveProvider returns the provider owned by p
func (r *Resolver) ResolveProvider(ctx context.Context, p Principal) (*model.Provider, error) {
	if err := Authorize(p, GateProviderScoped); err != nil {
		return nil, err
	}
	return r.repo.Providers().GetByUserID(ctx, p.UserID)
}

// ResolveCollaborator returns the collaborator row of p
func (r *Resolver) ResolveCollaborator(ctx context.Context, p Principal) (*model.Collaborator, error) {
	if err := Authorize(p, GateCollaborator); err != nil {
		return nil, err
	}
	return r.repo.Collaborators().GetByUserID(ctx, p.UserID)
}

// AuthorizeGymDeletion checks that p may delete gym. Admins bypass the
// ownership check; a provider must own the gym.
func (r *Resolver) AuthorizeGymDeletion(ctx context.Context, p Principal, gym *model.Gym) error {
	if err := Authorize(p, GateGymDeletion); err != nil {
		return err
	}
	if p.Role == model.RoleThriveAdmin {
		return nil
	}
	provider, err := r.ResolveProvider(ctx, p)
	if err != nil {
		return err
	}
	if provider.ID != gym.ProviderID {
		return ierr.NewError("gym belongs to another provider").
			WithHint("Você não tem permissão para excluir esta academia").
			Mark(ierr.ErrForbidden)
	}
	return nil
}
