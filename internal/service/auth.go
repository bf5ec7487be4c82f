package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/validator"
	"github.com/thrivecorp/platform/pkg/jwtutil"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

type AuthService struct {
	repo       repository.Repository
	jwt        *jwtutil.JWTUtil
	bcryptCost int
}

func NewAuthService(repo repository.Repository, jwt *jwtutil.JWTUtil) *AuthService {
	return &AuthService{repo: repo, jwt: jwt, bcryptCost: bcrypt.DefaultCost}
}

// AccountInput holds the credentials and name of a new user
type AccountInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

type RegisterCompanyInput struct {
	AccountInput
	CompanyName string `json:"company_name" validate:"required"`
	CNPJ        string `json:"cnpj" validate:"required"`
	Address     string `json:"address"`
}

// RegisterProviderInput may carry the provider's first gym. Approving that
// gym activates the provider's user.
type RegisterProviderInput struct {
	AccountInput
	ProviderName string    `json:"provider_name" validate:"required"`
	CNPJ         string    `json:"cnpj" validate:"required"`
	Gym          *GymInput `json:"gym"`
}

type ProviderRegistration struct {
	Provider *model.Provider `json:"provider"`
	Gym      *model.Gym      `json:"gym,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newUser(in AccountInput, role model.Role, status model.UserStatus, cost int) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint(ierr.GenericMessage).
			Mark(ierr.ErrInternal)
	}
	return &model.User{
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}, nil
}

// RegisterCompany creates a pending company and its pending admin user in
// one transaction. Both wait for platform approval.
func (s *AuthService) RegisterCompany(ctx context.Context, in RegisterCompanyInput) (*model.Company, error) {
	if err := validator.ValidateRequest(&in); err != nil {
		return nil, err
	}
	user, err := newUser(in.AccountInput, model.RoleCompanyAdmin, model.UserStatusPending, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:    strings.TrimSpace(in.CompanyName),
		CNPJ:    strings.TrimSpace(in.CNPJ),
		Address: in.Address,
		Status:  model.CompanyStatusPending,
	}
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		company.AdminID = user.ID
		return tx.Companies().Create(ctx, company)
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("company registered",
		zap.Uint("company_id", company.ID),
		zap.String("admin_email", user.Email))
	return company, nil
}

// RegisterProvider creates a provider, its pending user and the optional
// pending gym in one transaction
func (s *AuthService) RegisterProvider(ctx context.Context, in RegisterProviderInput) (*ProviderRegistration, error) {
	if err := validator.ValidateRequest(&in); err != nil {
		return nil, err
	}
	user, err := newUser(in.AccountInput, model.RoleProvider, model.UserStatusPending, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	reg := &ProviderRegistration{
		Provider: &model.Provider{
			Name: strings.TrimSpace(in.ProviderName),
			CNPJ: strings.TrimSpace(in.CNPJ),
		},
	}
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		reg.Provider.UserID = user.ID
		if err := tx.Providers().Create(ctx, reg.Provider); err != nil {
			return err
		}
		if in.Gym == nil {
			return nil
		}
		reg.Gym = &model.Gym{
			ProviderID: reg.Provider.ID,
			Name:       strings.TrimSpace(in.Gym.Name),
			Address:    in.Gym.Address,
			Status:     model.GymStatusPending,
		}
		return tx.Gyms().Create(ctx, reg.Gym)
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("provider registered",
		zap.Uint("provider_id", reg.Provider.ID),
		zap.Bool("with_gym", reg.Gym != nil),
		zap.String("email", user.Email))
	return reg, nil
}

// Login checks the credentials of an active user and issues a token
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validator.ValidateRequest(&in); err != nil {
		return nil, err
	}
	log := logger.Ctx(ctx)

	user, err := s.repo.Users().GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		log.Warn("login for unknown email", zap.String("email", in.Email))
		prometheus.RecordAuthError("login_failure")
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		log.Warn("invalid password", zap.String("email", user.Email))
		prometheus.RecordAuthError("login_failure")
		return nil, invalidCredentials()
	}

	if user.Status != model.UserStatusActive {
		prometheus.RecordAuthError("inactive_account")
		return nil, ierr.NewError("account is not active").
			WithHint("Conta aguardando aprovação").
			Mark(ierr.ErrForbidden)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint(ierr.GenericMessage).
			Mark(ierr.ErrInternal)
	}

	log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{Token: token, User: user}, nil
}

func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("Email ou senha inválidos").
		Mark(ierr.ErrUnauthorized)
}

// ListPending returns users waiting for approval
func (s *AuthService) ListPending(ctx context.Context, p authz.Principal) ([]*model.User, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}
	return s.repo.Users().ListByStatus(ctx, model.UserStatusPending)
}

// ApproveUser activates a pending user
func (s *AuthService) ApproveUser(ctx context.Context, p authz.Principal, userID uint) (*model.User, error) {
	if err := authz.Authorize(p, authz.GateAdminOnly); err != nil {
		return nil, err
	}
	if err := s.repo.Users().UpdateStatus(ctx, userID, model.UserStatusActive); err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("user approved", zap.Uint("user_id", userID), zap.Uint("admin_id", p.UserID))
	return s.repo.Users().Get(ctx, userID)
}

// CreateAdmin creates an active platform administrator. It has no gate and
// is only reachable from the command line.
func (s *AuthService) CreateAdmin(ctx context.Context, in AccountInput) (*model.User, error) {
	if err := validator.ValidateRequest(&in); err != nil {
		return nil, err
	}
	user, err := newUser(in, model.RoleThriveAdmin, model.UserStatusActive, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
