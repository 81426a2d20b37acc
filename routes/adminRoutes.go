package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lavanyasahu/CitiFix/controllers"
	"github.com/lavanyasahu/CitiFix/middlewares"
	"github.com/lavanyasahu/CitiFix/models"
)

// AdminRoutes sets up the admin panel routes
func AdminRoutes(r *gin.Engine, ad *controllers.AdminController, jwtSecret string) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware(jwtSecret),
		middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("/authorities", ad.CreateAuthority)
		admin.GET("/users", ad.ListUsers)
	}
}
