package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/authz"
	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/pkg/jwtutil"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

const principalKey = "principal"

// AuthMiddleware validates the bearer token and stores the caller's
// principal in the echo and request contexts.
func AuthMiddleware(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token não fornecido"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Formato de token inválido"})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido ou expirado"})
			}

			role := model.Role(claims.Role)
			if !role.Valid() {
				log.Warn("Token carries unknown role", zap.String("role", claims.Role))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido ou expirado"})
			}

			p := authz.Principal{UserID: claims.UserID, Email: claims.Email, Role: role}
			c.Set(principalKey, p)
			c.SetRequest(c.Request().WithContext(authz.WithPrincipal(c.Request().Context(), p)))
			logger.Set(c, log.With(zap.Uint("user_id", p.UserID), zap.String("role", string(p.Role))))

			return next(c)
		}
	}
}

// RequireGate rejects callers whose role does not pass gate, before the
// handler touches any data.
func RequireGate(gate authz.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := GetPrincipal(c)
			if !ok {
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token não fornecido"})
			}
			if err := authz.Authorize(p, gate); err != nil {
				logger.FromContext(c).Warn("Access denied",
					zap.Uint("user_id", p.UserID),
					zap.String("role", string(p.Role)),
					zap.String("gate", gate.String()))
				prometheus.RecordAuthError("forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{"error": ierr.UserMessage(err)})
			}
			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated caller
func GetPrincipal(c echo.Context) (authz.Principal, bool) {
	p, ok := c.Get(principalKey).(authz.Principal)
	return p, ok
}
