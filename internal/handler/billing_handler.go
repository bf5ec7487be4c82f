package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/report"
	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

func (h *Handler) BillingReport(c echo.Context) error {
	year, month, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.Billing.MonthlyReport(c.Request().Context(), p, year, month)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordReport("billing", "json")
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) DownloadBillingReport(c echo.Context) error {
	log := logger.FromContext(c)
	year, month, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.Billing.MonthlyReport(c.Request().Context(), p, year, month)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.exporter.Billing(rows)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordReport("billing", "csv")
	log.Info("Billing report exported",
		zap.Uint("admin_id", p.UserID),
		zap.Int("rows", len(rows)),
		zap.Int("year", year),
		zap.Int("month", month))
	return attachment(c, report.BillingFilename(year, month), data)
}

func (h *Handler) SetBillingStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.SetStatusInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	history, err := h.svc.Billing.SetStatus(c.Request().Context(), p, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Status de faturamento atualizado",
		"billing": history,
	})
}

type markSentRequest struct {
	CompanyID uint `json:"companyId" validate:"required"`
	Year      int  `json:"year" validate:"required"`
	Month     int  `json:"month" validate:"required"`
}

func (h *Handler) MarkSent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req markSentRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	history, err := h.svc.Billing.MarkSent(c.Request().Context(), p, req.CompanyID, req.Year, req.Month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Fatura marcada como enviada",
		"billing": history,
	})
}
