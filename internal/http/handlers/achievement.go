package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type AchievementHandler struct {
	achievements services.AchievementService
}

func NewAchievementHandler(achievements services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

// GET /achievements
func (ah *AchievementHandler) List(c *gin.Context) {
	out, err := ah.achievements.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /user-achievements
func (ah *AchievementHandler) ForUser(c *gin.Context) {
	out, err := ah.achievements.ForUser(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}
