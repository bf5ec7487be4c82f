package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/internal/service"
)

func (h *Handler) ListCompanies(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	companies, err := h.svc.Companies.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *Handler) MyCompany(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	company, err := h.svc.Companies.Mine(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *Handler) ApproveCompany(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	company, err := h.svc.Companies.Approve(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *Handler) DeleteCompany(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Companies.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Empresa excluída com sucesso"})
}

func (h *Handler) AddCollaborator(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.AddCollaboratorInput
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	collaborator, err := h.svc.Companies.AddCollaborator(c.Request().Context(), p, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, collaborator)
}

func (h *Handler) ListCollaborators(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.svc.Companies.ListCollaborators(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type collaboratorStatusRequest struct {
	Status model.CollaboratorStatus `json:"status" validate:"required"`
}

func (h *Handler) SetCollaboratorStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req collaboratorStatusRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	collaborator, err := h.svc.Companies.SetCollaboratorStatus(c.Request().Context(), p, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collaborator)
}
