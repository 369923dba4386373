package routes

import (
	"pathfinder_gateway/internal/handlers"
	"pathfinder_gateway/internal/middleware"
	"pathfinder_gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes - поддерево соискателя. Гард один на всю группу:
// чужая роль не увидит ни одной страницы поддерева, ее уводит на ЕЕ
// домашнюю страницу.
func SetupUserRoutes(r *gin.Engine, userHandler *handlers.UserHandler) {
	user := r.Group("/")
	user.Use(middleware.RequireRole(models.UserRoleUser))
	{
		userHandler.RegisterRoutes(user)
	}
}
