package routes

import (
	"pathfinder_gateway/internal/handlers"
	"pathfinder_gateway/internal/middleware"
	"pathfinder_gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupRecruiterRoutes - поддерево рекрутера под /recruiter
func SetupRecruiterRoutes(r *gin.Engine, recruiterHandler *handlers.RecruiterHandler) {
	recruiter := r.Group("/recruiter")
	recruiter.Use(middleware.RequireRole(models.UserRoleRecruiter))
	{
		recruiterHandler.RegisterRoutes(recruiter)
	}
}
