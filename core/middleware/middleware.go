package middleware

import (
	"strings"

	"gclub-api/core/cache"
	"gclub-api/core/controller"
	"gclub-api/core/errors"
	"gclub-api/core/logger"
	"gclub-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the bearer token, rejects blacklisted tokens and
// stores the caller's id and role in the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "authorization header must use Bearer scheme")
			}

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
					return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to check token")
				}
				if blacklisted {
					return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token is blacklisted")
				}
			}

			tokenData, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if ae, ok := err.(*errors.AppError); ok {
					return controller.NewErrorResponse(401, ae.Code, ae.Message)
				}
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUserID, tokenData.UserID)
			c.Set(ContextKeyRole, tokenData.Role)
			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user id placed by AuthMiddleware.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

func RoleFromContext(c echo.Context) string {
	role, _ := c.Get(ContextKeyRole).(string)
	return role
}
