package routes

import (
	"pathfinder_gateway/internal/handlers"
	"pathfinder_gateway/internal/middleware"
	"pathfinder_gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты шлюза.
// SessionMiddleware висит на всем роутере: даже публичным страницам нужна
// сессия, чтобы корень мог увести залогиненного на его домашнюю страницу.
func RegisterRoutes(
	ginRouter *gin.Engine,
	manager *session.Manager,
	appHandlers *handlers.AppHandlers,
) {
	ginRouter.Use(middleware.SessionMiddleware(manager))

	root := ginRouter.Group("/")
	{
		appHandlers.AuthHandler.RegisterRoutes(root)
	}

	SetupUserRoutes(ginRouter, appHandlers.UserHandler)
	SetupRecruiterRoutes(ginRouter, appHandlers.RecruiterHandler)
}
