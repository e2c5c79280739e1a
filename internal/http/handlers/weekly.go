package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type WeeklyActivityHandler struct {
	weekly services.WeeklyActivityService
}

func NewWeeklyActivityHandler(weekly services.WeeklyActivityService) *WeeklyActivityHandler {
	return &WeeklyActivityHandler{weekly: weekly}
}

// GET /weekly-activity
func (wh *WeeklyActivityHandler) Current(c *gin.Context) {
	out, err := wh.weekly.Current(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /weekly-activity
// body: { "dayOfWeek"?: "Mon".."Sun", "minutes": n }
func (wh *WeeklyActivityHandler) Record(c *gin.Context) {
	var req services.RecordMinutesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	row, err := wh.weekly.Record(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, row)
}
