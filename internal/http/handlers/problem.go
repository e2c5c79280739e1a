package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type ProblemHandler struct {
	problems services.ProblemService
}

func NewProblemHandler(problems services.ProblemService) *ProblemHandler {
	return &ProblemHandler{problems: problems}
}

// POST /problems
func (ph *ProblemHandler) Create(c *gin.Context) {
	var req services.CreateProblemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	p, err := ph.problems.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, p)
}

// GET /problems
func (ph *ProblemHandler) List(c *gin.Context) {
	out, err := ph.problems.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /problems/:id
func (ph *ProblemHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "problem")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := ph.problems.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// POST /problems/:id/thinking-process
func (ph *ProblemHandler) GenerateThinkingProcess(c *gin.Context) {
	id, err := pathID(c, "id", "problem")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := ph.problems.GenerateThinkingProcess(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, p)
}
