package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lavanyasahu/CitiFix/controllers"
	"github.com/lavanyasahu/CitiFix/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, jwtSecret string) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.POST("/authority/login", ac.AuthorityLogin)
		auth.GET("/me", middlewares.AuthMiddleware(jwtSecret), ac.Me)
	}
}
