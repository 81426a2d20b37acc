package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lavanyasahu/CitiFix/controllers"
	"github.com/lavanyasahu/CitiFix/middlewares"
	"github.com/lavanyasahu/CitiFix/models"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, jwtSecret string) {
	r.GET("/api/analytics", ic.Analytics)

	issue := r.Group("/api/issues")
	{
		issue.GET("", ic.List)
		issue.GET("/:id", ic.Get)
		issue.GET("/:id/signatures", ic.Signatures)
		issue.POST("", middlewares.OptionalAuthMiddleware(jwtSecret), ic.Create)

		signing := issue.Group("", middlewares.AuthMiddleware(jwtSecret),
			middlewares.RequireRole(models.RoleAuthority, models.RoleAdmin))
		{
			signing.POST("/:id/signatures", ic.Sign)
			signing.POST("/:id/acknowledge", ic.Acknowledge)
			signing.POST("/:id/resolve", ic.Resolve)
		}

		issue.PATCH("/:id/notes", middlewares.AuthMiddleware(jwtSecret),
			middlewares.RequireRole(models.RoleAdmin), ic.SetNotes)
	}
}
