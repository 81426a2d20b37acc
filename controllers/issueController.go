package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/models"
	"github.com/lavanyasahu/CitiFix/services"
)

type IssueController struct {
	issues *services.IssueService
}

func NewIssueController(issues *services.IssueService) *IssueController {
	return &IssueController{issues: issues}
}

func issueIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// Create handles a new issue report. Anonymous reports are allowed; the
// reporter is attached only when the optional auth middleware found one.
func (ic *IssueController) Create(c *gin.Context) {
	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required"`
		Latitude    *float64 `json:"latitude,omitempty"`
		Longitude   *float64 `json:"longitude,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reporterID *primitive.ObjectID
	if actor, ok := actorFromContext(c); ok {
		reporterID = &actor.ID
	}

	id, err := ic.issues.CreateIssue(c.Request.Context(), services.CreateIssueInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ReporterID:  reporterID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "status": models.StatusPending})
}

// List returns the public feed, newest first.
func (ic *IssueController) List(c *gin.Context) {
	issues, err := ic.issues.ListIssues(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues, "totalIssues": len(issues)})
}

// Get returns one issue with its derived priority.
func (ic *IssueController) Get(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	issue, err := ic.issues.GetIssue(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"issue":    issue,
		"priority": issue.Priority(time.Now().UTC()),
	})
}

// Signatures returns the issue's audit trail, oldest first.
func (ic *IssueController) Signatures(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	sigs, err := ic.issues.GetSignatures(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signatures": sigs})
}

type noteInput struct {
	Note string `json:"note" binding:"max=500"`
}

// Sign appends an authority signature without changing status.
func (ic *IssueController) Sign(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	var input noteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sigID, err := ic.issues.AddSignature(c.Request.Context(), actor, id, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sigID.Hex()})
}

// Acknowledge moves a pending issue to in_progress.
func (ic *IssueController) Acknowledge(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	if err := ic.issues.Acknowledge(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusInProgress})
}

// Resolve marks the issue resolved and records the resolution signature.
func (ic *IssueController) Resolve(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	var input noteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sigID, err := ic.issues.MarkResolved(c.Request.Context(), actor, id, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"signatureId": sigID.Hex(),
		"status":      models.StatusResolved,
	})
}

// SetNotes stores internal admin notes on an issue.
func (ic *IssueController) SetNotes(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Notes string `json:"notes" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ic.issues.SetAdminNotes(c.Request.Context(), actor, id, input.Notes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notes updated"})
}

// Analytics returns backlog counts for the dashboard.
func (ic *IssueController) Analytics(c *gin.Context) {
	analytics, err := ic.issues.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
