package router

import (
	"gclub-api/core/middleware"
	"gclub-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	users := g.Group("/users", mw.AuthMiddleware())
	users.GET("/me", r.controller.GetMe)
}
