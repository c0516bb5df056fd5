package controller

import (
	"gclub-api/core/controller"
	"gclub-api/core/errors"
	"gclub-api/core/middleware"
	"gclub-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service service.AuthServiceInterface
	controller.BaseController
}

func NewAuthController(service service.AuthServiceInterface) *AuthController {
	return &AuthController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetMe returns the authenticated user's profile
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Router /users/me [get]
func (c *AuthController) GetMe(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	user, appErr := c.service.GetUserByID(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, user, "User retrieved successfully")
}
