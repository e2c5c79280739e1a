package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type ExerciseHandler struct {
	exercises services.ExerciseService
}

func NewExerciseHandler(exercises services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// GET /exercises?skillId=
func (eh *ExerciseHandler) List(c *gin.Context) {
	skillID, err := queryInt(c, "skillId")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	out, err := eh.exercises.List(c.Request.Context(), skillID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /exercises/:id
func (eh *ExerciseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "exercise")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	ex, err := eh.exercises.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, ex)
}

// POST /generate-exercise
// body: { "thinkingType": "Critical" | "Creative" | "Strategic" | "Analytical" }
func (eh *ExerciseHandler) Generate(c *gin.Context) {
	var req struct {
		ThinkingType string `json:"thinkingType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	ex, err := eh.exercises.Generate(c.Request.Context(), req.ThinkingType)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, ex)
}
