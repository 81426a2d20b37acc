package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/middlewares"
	"github.com/lavanyasahu/CitiFix/models"
	"github.com/lavanyasahu/CitiFix/services"
)

func respondError(c *gin.Context, err error) {
	c.JSON(common.HTTPStatusFromError(err), gin.H{"error": err.Error()})
}

// actorFromContext rebuilds the acting user from what the auth
// middleware stored. ok is false on anonymous requests.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	idVal, exists := c.Get(middlewares.ContextUserID)
	if !exists {
		return services.Actor{}, false
	}
	idStr, _ := idVal.(string)
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return services.Actor{}, false
	}
	roleVal, _ := c.Get(middlewares.ContextUserRole)
	role, _ := roleVal.(models.Role)
	return services.Actor{ID: id, Role: role}, true
}

func requireActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return actor, ok
}
