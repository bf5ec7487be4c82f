package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey int

const ctxLoggerKey contextKey = iota

// echo context key
const loggerKey = "logger"

// WithContext returns a copy of ctx carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, logger)
}

// FromContext retrieves the request logger from the Echo context
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return l
	}
	return Ctx(c.Request().Context())
}

// Ctx retrieves the logger stored in a Go context
func Ctx(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxLoggerKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// Set replaces the request logger, e.g. after authentication adds user fields
func Set(c echo.Context, logger *zap.Logger) {
	c.Set(loggerKey, logger)
	c.SetRequest(c.Request().WithContext(WithContext(c.Request().Context(), logger)))
}
