package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/report"
	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/internal/testutil"
	"github.com/thrivecorp/platform/pkg/config"
	"github.com/thrivecorp/platform/pkg/jwtutil"
)

type testServer struct {
	t    *testing.T
	e    *echo.Echo
	repo *testutil.InMemoryRepository
	seed *testutil.Seeder
	jwt  *jwtutil.JWTUtil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := testutil.NewInMemoryRepository()
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "handler-test-key", ExpirationHours: 1})
	exporter := report.NewExporter(config.BillingConfig{Locale: "pt-BR", CurrencySymbol: "R$"})

	e := echo.New()
	New(service.New(repo, jwt), exporter, "thrivecorp-test").Register(e, jwt)

	return &testServer{
		t:    t,
		e:    e,
		repo: repo,
		seed: testutil.NewSeeder(t, repo),
		jwt:  jwt,
	}
}

func (s *testServer) token(u *model.User) string {
	tok, err := s.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(s.t, err)
	return tok
}

// do sends a request as u; a nil u sends no Authorization header
func (s *testServer) do(method, path string, body interface{}, u *model.User) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if u != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(u))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(v))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

func (s *testServer) doWithToken(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}
