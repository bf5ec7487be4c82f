package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/thrivecorp/platform/internal/authz"
	"github.com/thrivecorp/platform/internal/middleware"
	"github.com/thrivecorp/platform/internal/validator"
	"github.com/thrivecorp/platform/pkg/jwtutil"
	"github.com/thrivecorp/platform/prometheus"
)

// Register mounts every route on e
func (h *Handler) Register(e *echo.Echo, jwt *jwtutil.JWTUtil) {
	e.Validator = validator.EchoValidator{}

	// Public routes
	e.GET("/health", h.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	auth := e.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register/company", h.RegisterCompany)
	auth.POST("/register/provider", h.RegisterProvider)

	authn := middleware.AuthMiddleware(jwt)
	adminOnly := middleware.RequireGate(authz.GateAdminOnly)
	companyScoped := middleware.RequireGate(authz.GateCompanyScoped)
	providerScoped := middleware.RequireGate(authz.GateProviderScoped)

	users := e.Group("/users", authn, adminOnly)
	users.GET("/pending", h.ListPendingUsers)
	users.PATCH("/:id/approve", h.ApproveUser)

	companies := e.Group("/companies", authn)
	companies.GET("", h.ListCompanies, adminOnly)
	companies.GET("/me", h.MyCompany, companyScoped)
	companies.PATCH("/:id/approve", h.ApproveCompany, adminOnly)
	companies.DELETE("/:id", h.DeleteCompany, adminOnly)

	collaborators := e.Group("/collaborators", authn, companyScoped)
	collaborators.POST("", h.AddCollaborator)
	collaborators.GET("", h.ListCollaborators)
	collaborators.PATCH("/:id/status", h.SetCollaboratorStatus)

	gyms := e.Group("/gyms", authn)
	gyms.POST("", h.CreateGym, providerScoped)
	gyms.GET("", h.ListGyms, middleware.RequireGate(authz.GateGymListing))
	gyms.PATCH("/:id/approve", h.ApproveGym, adminOnly)
	gyms.DELETE("/:id/reprove", h.ReproveGym, adminOnly)
	gyms.DELETE("/:id", h.DeleteGym, middleware.RequireGate(authz.GateGymDeletion))

	plans := e.Group("/plans", authn, providerScoped)
	plans.POST("", h.CreatePlan)
	plans.GET("", h.ListPlans)
	plans.GET("/effective-price", h.EffectivePrice)
	plans.PUT("/:id", h.UpdatePlan)
	plans.DELETE("/:id", h.DeletePlan)

	accesses := e.Group("/accesses", authn)
	accesses.POST("/checkin", h.CheckIn, middleware.RequireGate(authz.GateCollaborator))
	accesses.GET("/provider-report", h.ProviderReport, providerScoped)
	accesses.GET("/company-report", h.CompanyReport, companyScoped)
	accesses.GET("/company-details-report", h.CompanyDetailsReport, companyScoped)
	accesses.GET("/download-company-report", h.DownloadCompanyReport, companyScoped)
	accesses.GET("/billing-report", h.BillingReport, adminOnly)

	billing := e.Group("/billing", authn, adminOnly)
	billing.GET("/download", h.DownloadBillingReport)
	billing.POST("/status", h.SetBillingStatus)
	billing.POST("/mark-sent", h.MarkSent)
}
