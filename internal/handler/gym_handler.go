package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thrivecorp/platform/internal/service"
)

func (h *Handler) CreateGym(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.GymInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	gym, err := h.svc.Gyms.Create(c.Request().Context(), p, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, gym)
}

func (h *Handler) ListGyms(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	gyms, err := h.svc.Gyms.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, gyms)
}

func (h *Handler) ApproveGym(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	gym, err := h.svc.Gyms.Approve(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, gym)
}

func (h *Handler) ReproveGym(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Gyms.Reprove(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Academia reprovada"})
}

func (h *Handler) DeleteGym(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Gyms.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Academia excluída com sucesso"})
}
