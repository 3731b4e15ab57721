package routes

import (
	"github.com/gin-gonic/gin"

	"docvault_backend/internal/handlers"
	"docvault_backend/internal/middleware"
	"docvault_backend/internal/models"
)

// RegisterRoutes wires all HTTP routes under /api/v1.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, jwtSecret string) {
	authMW := middleware.AuthMiddleware(jwtSecret)
	adminMW := middleware.RoleMiddleware(models.UserRoleAdmin)

	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.DocumentHandler.RegisterRoutes(api, authMW)
		appHandlers.NotificationHandler.RegisterRoutes(api, authMW, adminMW)
	}
}
