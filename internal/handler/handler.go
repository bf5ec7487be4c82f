// Package handler exposes the services over HTTP with echo.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/middleware"
	"github.com/thrivecorp/platform/internal/report"
	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

type Handler struct {
	svc      *service.Services
	exporter *report.Exporter
	name     string
}

func New(svc *service.Services, exporter *report.Exporter, serviceName string) *Handler {
	return &Handler{svc: svc, exporter: exporter, name: serviceName}
}

// respondError writes the error body for err. Server side failures are
// logged with their stack and answered with a generic message.
func respondError(c echo.Context, err error) error {
	status := ierr.HTTPStatus(err)
	log := logger.FromContext(c)

	switch {
	case status >= http.StatusInternalServerError:
		log.Error("Request failed",
			zap.String("error", err.Error()),
			zap.String("stack", fmt.Sprintf("%+v", err)))
	case status == http.StatusForbidden:
		prometheus.RecordAuthError("forbidden")
		log.Warn("Request forbidden", zap.Error(err))
	default:
		log.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.JSON(status, echo.Map{"error": ierr.UserMessage(err)})
}

func principal(c echo.Context) (authz.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return authz.Principal{}, ierr.NewError("no principal in context").
			WithHint("Token não fornecido").
			Mark(ierr.ErrUnauthorized)
	}
	return p, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, ierr.NewError(fmt.Sprintf("invalid %s %q", name, c.Param(name))).
			WithHint("Identificador inválido").
			Mark(ierr.ErrValidation)
	}
	return uint(id), nil
}

// bind decodes the request into req and wraps decoding failures as
// validation errors.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return ierr.WithError(err).
			WithHint("Requisição inválida").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// periodQuery is the required year/month pair of report endpoints
type periodQuery struct {
	Year  *int `query:"year" validate:"required"`
	Month *int `query:"month" validate:"required"`
}

// period reads year and month from the query string. Both are required and
// checked before any data access.
func period(c echo.Context) (int, int, error) {
	var q periodQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return 0, 0, ierr.WithError(err).
			WithHint("Ano e mês devem ser numéricos").
			Mark(ierr.ErrValidation)
	}
	if err := c.Validate(&q); err != nil {
		return 0, 0, err
	}
	return *q.Year, *q.Month, nil
}

func attachment(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, report.ContentType, data)
}
