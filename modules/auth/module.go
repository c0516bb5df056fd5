package auth

import (
	"gclub-api/core/database"
	"gclub-api/core/middleware"
	"gclub-api/modules/auth/controller"
	"gclub-api/modules/auth/repository"
	"gclub-api/modules/auth/router"
	"gclub-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and returns the service used by the
// recruitment engine for moderator capability checks.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) service.AuthServiceInterface {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo)
	ctrl := controller.NewAuthController(svc)
	r := router.NewAuthRouter(ctrl)

	r.Register(g, mw)

	return svc
}
