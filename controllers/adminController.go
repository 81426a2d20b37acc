package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lavanyasahu/CitiFix/services"
)

type AdminController struct {
	auth *services.AuthService
}

func NewAdminController(auth *services.AuthService) *AdminController {
	return &AdminController{auth: auth}
}

// CreateAuthority provisions an authority account. Admin only.
func (ad *AdminController) CreateAuthority(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := ad.auth.CreateAuthority(c.Request.Context(), actor, input.Username, input.Email, input.Password, input.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       id.Hex(),
		"username": input.Username,
		"role":     "authority",
	})
}

// ListUsers returns every account for the admin panel.
func (ad *AdminController) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	users, err := ad.auth.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}
