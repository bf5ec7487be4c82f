package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/report"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

type checkInRequest struct {
	GymID uint `json:"gymId" validate:"required"`
}

func (h *Handler) CheckIn(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req checkInRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	access, err := h.svc.Accesses.CheckIn(c.Request().Context(), p, req.GymID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, access)
}

func (h *Handler) ProviderReport(c echo.Context) error {
	year, month, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.Accesses.ProviderReport(c.Request().Context(), p, year, month)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordReport("provider", "json")
	return c.JSON(http.StatusOK, rows)
}

// CompanyReport ignores any company id in the request; the company always
// comes from the caller.
func (h *Handler) CompanyReport(c echo.Context) error {
	year, month, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.Accesses.CompanyReport(c.Request().Context(), p, year, month)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordReport("company", "json")
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CompanyDetailsReport(c echo.Context) error {
	year, month, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.Billing.CompanyAccessDetails(c.Request().Context(), p, year, month)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordReport("company_details", "json")
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) DownloadCompanyReport(c echo.Context) error {
	log := logger.FromContext(c)
	year, month, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.Billing.CompanyAccessDetails(c.Request().Context(), p, year, month)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.exporter.CompanyAccesses(rows)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordReport("company_details", "csv")
	log.Info("Company report exported", zap.Int("rows", len(rows)), zap.Int("year", year), zap.Int("month", month))
	return attachment(c, report.CompanyFilename(year, month), data)
}
