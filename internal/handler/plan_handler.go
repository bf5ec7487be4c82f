package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thrivecorp/platform/internal/service"
)

func (h *Handler) CreatePlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.PlanInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	plan, err := h.svc.Plans.Create(c.Request().Context(), p, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, plan)
}

func (h *Handler) ListPlans(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	plans, err := h.svc.Plans.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plans)
}

// EffectivePrice reports the price per access the billing reports use
func (h *Handler) EffectivePrice(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	price, err := h.svc.Plans.Effective(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, price)
}

func (h *Handler) UpdatePlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.PlanInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	plan, err := h.svc.Plans.Update(c.Request().Context(), p, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) DeletePlan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Plans.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
