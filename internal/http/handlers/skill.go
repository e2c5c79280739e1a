package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type SkillHandler struct {
	skills services.SkillService
}

func NewSkillHandler(skills services.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// GET /skills
func (sh *SkillHandler) ListSkills(c *gin.Context) {
	out, err := sh.skills.ListSkills(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /skills/:id
func (sh *SkillHandler) GetSkill(c *gin.Context) {
	id, err := pathID(c, "id", "skill")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	skill, err := sh.skills.GetSkill(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, skill)
}

// GET /user-skills
func (sh *SkillHandler) ListUserSkills(c *gin.Context) {
	out, err := sh.skills.ListUserSkills(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /user-skills/:id
// body: { "progress"?: 0..100, "level"?: "..." }
func (sh *SkillHandler) UpdateUserSkill(c *gin.Context) {
	id, err := pathID(c, "id", "user skill")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateUserSkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	us, err := sh.skills.UpdateUserSkill(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, us)
}

// GET /user-skills/:id/badge.png
func (sh *SkillHandler) Badge(c *gin.Context) {
	id, err := pathID(c, "id", "user skill")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	png, err := sh.skills.Badge(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", png)
}
