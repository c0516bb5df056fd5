package gamepost

import (
	"gclub-api/core/config"
	"gclub-api/core/database"
	"gclub-api/core/middleware"
	authService "gclub-api/modules/auth/service"
	"gclub-api/modules/gamepost/controller"
	"gclub-api/modules/gamepost/repository"
	"gclub-api/modules/gamepost/router"
	"gclub-api/modules/gamepost/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the game post module and returns the engine so the worker
// can register its sweeps.
func Init(g *echo.Group, db *database.Database, mw *middleware.Middleware, notifier service.Notifier, auth authService.AuthServiceInterface) *service.RecruitService {
	cfg := config.Get()

	uow := repository.NewUnitOfWork(db)
	svc := service.NewRecruitService(uow, notifier, auth, cfg.Recruit.GracePeriodMinutes)
	ctrl := controller.NewGamePostController(svc)
	r := router.NewGamePostRouter(ctrl)

	r.Register(g, mw)

	return svc
}
