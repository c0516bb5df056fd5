package router

import (
	"gclub-api/core/middleware"
	"gclub-api/modules/gamepost/controller"

	"github.com/labstack/echo/v4"
)

type GamePostRouter struct {
	controller *controller.GamePostController
}

func NewGamePostRouter(controller *controller.GamePostController) *GamePostRouter {
	return &GamePostRouter{controller: controller}
}

func (r *GamePostRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	posts := g.Group("/game-posts")

	// Browsing is public; everything that mutates requires auth.
	posts.GET("", r.controller.List)
	posts.GET("/:id", r.controller.Get)
	posts.GET("/:id/waiting", r.controller.WaitingQueue)

	auth := posts.Group("", mw.AuthMiddleware())
	auth.POST("", r.controller.Create)
	auth.DELETE("/:id", r.controller.Delete)
	auth.POST("/:id/join", r.controller.Join)
	auth.DELETE("/:id/leave", r.controller.Leave)
	auth.POST("/:id/leave-early", r.controller.LeaveEarly)
	auth.POST("/:id/guests", r.controller.AddGuest)
	auth.POST("/:id/waiting", r.controller.RequestWait)
	auth.DELETE("/:id/waiting/:entryId", r.controller.CancelWait)
	auth.POST("/:id/waiting/:entryId/accept", r.controller.AcceptInvite)
	auth.PATCH("/:id/status/toggle", r.controller.ToggleStatus)
	auth.PATCH("/:id/close", r.controller.Close)
}
