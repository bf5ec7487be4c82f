package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/internal/testutil"
)

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "thrivecorp-test", body["service"])
}

func TestLoginAndCheckIn(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()

	rec := s.do(http.MethodPost, "/auth/login", map[string]string{
		"email": sc.Collaborators[0].Email, "password": testutil.DefaultPassword,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login service.LoginResult
	decode(t, rec, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, sc.Collaborators[0].ID, login.User.ID)

	req := fmt.Sprintf(`{"gymId": %d}`, sc.Gym.ID)
	rec = s.doWithToken(http.MethodPost, "/accesses/checkin", req, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var access model.Access
	decode(t, rec, &access)
	assert.Equal(t, sc.Collaborators[0].ID, access.UserID)
	assert.Equal(t, sc.Gym.ID, access.GymID)

	rec = s.doWithToken(http.MethodPost, "/accesses/checkin", `{}`, login.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/accesses/checkin", req, sc.ProviderUser)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_Rejections(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()

	rec := s.do(http.MethodPost, "/auth/login", map[string]string{
		"email": sc.Admin.Email, "password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email ou senha inválidos", errorMessage(t, rec))

	rec = s.do(http.MethodPost, "/auth/login", `{"email": "not-an-email"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterCompany_RequiresApproval(t *testing.T) {
	s := newTestServer(t)
	admin := s.seed.Admin()

	rec := s.do(http.MethodPost, "/auth/register/company", map[string]string{
		"email":        "rh@globex.com",
		"password":     "senha-forte-456",
		"first_name":   "Carla",
		"last_name":    "Dias",
		"company_name": "Globex",
		"cnpj":         "12.345.678/0001-90",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Company model.Company `json:"company"`
	}
	decode(t, rec, &created)
	require.NotZero(t, created.Company.ID)

	credentials := map[string]string{"email": "rh@globex.com", "password": "senha-forte-456"}
	rec = s.do(http.MethodPost, "/auth/login", credentials, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Conta aguardando aprovação", errorMessage(t, rec))

	rec = s.do(http.MethodPatch, fmt.Sprintf("/companies/%d/approve", created.Company.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/login", credentials, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompanyReport_IgnoresRequestedCompany(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()

	other, otherAdmin := s.seed.Company("Company B")
	carla := s.seed.Collaborator(other.ID, "Carla", "Dias", model.CollaboratorStatusActive)
	s.seed.Access(carla.ID, sc.Gym.ID, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC))

	path := fmt.Sprintf("/accesses/company-report?year=2024&month=3&companyId=%d", sc.Company.ID)
	rec := s.do(http.MethodGet, path, nil, otherAdmin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rows []model.CollaboratorUsageRow
	decode(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, carla.ID, rows[0].UserID)
	assert.Equal(t, int64(1), rows[0].TotalAccesses)

	rec = s.do(http.MethodGet, "/accesses/company-report?year=2024&month=3", nil, sc.CompanyAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &rows)
	assert.Len(t, rows, 2)
}

func TestDownloadCompanyReport(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()

	rec := s.do(http.MethodGet, "/accesses/download-company-report?year=2024&month=3", nil, sc.CompanyAdmin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="report-2024-3.csv"`)

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Date/Time,First Name,Last Name,Gym,Cost", lines[0])
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "2024-03-"), line)
		assert.True(t, strings.HasSuffix(line, `"R$ 15,00"`), line)
	}

	rec = s.do(http.MethodGet, "/accesses/download-company-report?year=2024&month=3", nil, sc.Admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProviderReport(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()

	rec := s.do(http.MethodGet, "/accesses/provider-report?year=2024&month=3", nil, sc.ProviderUser)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rows []model.ProviderAccessRow
	decode(t, rec, &rows)
	require.Len(t, rows, 5)
	assert.Equal(t, "Company A", rows[0].CompanyName)
	assert.False(t, rows[0].Timestamp.Before(rows[len(rows)-1].Timestamp))
}

func TestDeleteGym(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()
	_, otherProvider := s.seed.Provider("Provider Q", model.UserStatusActive)

	rec := s.do(http.MethodDelete, fmt.Sprintf("/gyms/%d", sc.Gym.ID), nil, otherProvider)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/gyms/9999", nil, otherProvider)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Academia não encontrada", errorMessage(t, rec))

	rec = s.do(http.MethodDelete, "/gyms/abc", nil, sc.ProviderUser)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/gyms/%d", sc.Gym.ID), nil, sc.CompanyAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/gyms/%d", sc.Gym.ID), nil, sc.ProviderUser)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/gyms", nil, sc.ProviderUser)
	require.Equal(t, http.StatusOK, rec.Code)
	var gyms []model.Gym
	decode(t, rec, &gyms)
	assert.Empty(t, gyms)
}

func TestEffectivePrice(t *testing.T) {
	s := newTestServer(t)
	sc := s.seed.Scenario()
	s.seed.Plan(sc.Provider.ID, "99.90")

	rec := s.do(http.MethodGet, "/plans/effective-price", nil, sc.ProviderUser)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var price service.EffectivePrice
	decode(t, rec, &price)
	assert.Equal(t, sc.Provider.ID, price.ProviderID)
	require.True(t, price.PricePerAccess.Valid)
	assert.Equal(t, "15.00", price.PricePerAccess.Decimal.StringFixed(2))

	rec = s.do(http.MethodGet, "/plans/effective-price", nil, sc.CompanyAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterProvider_GymApprovalActivatesAccount(t *testing.T) {
	s := newTestServer(t)
	admin := s.seed.Admin()

	rec := s.do(http.MethodPost, "/auth/register/provider", map[string]interface{}{
		"email":         "dono@fitco.com",
		"password":      "senha-forte-456",
		"first_name":    "Davi",
		"provider_name": "FitCo",
		"cnpj":          "98.765.432/0001-10",
		"gym":           map[string]string{"name": "FitCo Centro", "address": "Rua A, 100"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Provider model.Provider `json:"provider"`
		Gym      model.Gym      `json:"gym"`
	}
	decode(t, rec, &created)
	require.NotZero(t, created.Gym.ID)
	assert.Equal(t, created.Provider.ID, created.Gym.ProviderID)

	credentials := map[string]string{"email": "dono@fitco.com", "password": "senha-forte-456"}
	rec = s.do(http.MethodPost, "/auth/login", credentials, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/gyms/%d/approve", created.Gym.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/login", credentials, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
