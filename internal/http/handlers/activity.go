package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type ActivityHandler struct {
	activities services.ActivityService
}

func NewActivityHandler(activities services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// GET /user-activities?limit=
func (ah *ActivityHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	out, err := ah.activities.List(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /user-activities
func (ah *ActivityHandler) Create(c *gin.Context) {
	var req services.CreateActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	a, err := ah.activities.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, a)
}

// GET /thinking-history?type=
func (ah *ActivityHandler) ThinkingHistory(c *gin.Context) {
	out, err := ah.activities.ThinkingHistory(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}
