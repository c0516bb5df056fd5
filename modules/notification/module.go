package notification

import (
	"gclub-api/core/database"
	"gclub-api/core/middleware"
	"gclub-api/modules/notification/controller"
	"gclub-api/modules/notification/repository"
	"gclub-api/modules/notification/router"
	"gclub-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and returns the service so the
// recruitment engine can push seat invitations and promotions.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	r := router.NewNotificationRouter(ctrl)

	r.Register(g, mw)

	return svc
}
