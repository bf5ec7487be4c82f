package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/pkg/logger"
)

func (h *Handler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.Auth.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) RegisterCompany(c echo.Context) error {
	var req service.RegisterCompanyInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	company, err := h.svc.Auth.RegisterCompany(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Cadastro recebido. Aguarde a aprovação.",
		"company": company,
	})
}

func (h *Handler) RegisterProvider(c echo.Context) error {
	var req service.RegisterProviderInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	reg, err := h.svc.Auth.RegisterProvider(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Cadastro recebido. Aguarde a aprovação.",
		"provider": reg.Provider,
		"gym":      reg.Gym,
	})
}

func (h *Handler) ListPendingUsers(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	users, err := h.svc.Auth.ListPending(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) ApproveUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.svc.Auth.ApproveUser(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	logger.FromContext(c).Info("User approved via API", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}
