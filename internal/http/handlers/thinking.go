package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

// ThinkingHandler serves the three LLM-backed thinking tools.
type ThinkingHandler struct {
	tools services.ThinkingToolService
}

func NewThinkingHandler(tools services.ThinkingToolService) *ThinkingHandler {
	return &ThinkingHandler{tools: tools}
}

// POST /evaluate-thinking
func (th *ThinkingHandler) Evaluate(c *gin.Context) {
	var req domain.EvaluateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	out, err := th.tools.Evaluate(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /reverse-engineer
func (th *ThinkingHandler) ReverseEngineer(c *gin.Context) {
	var req domain.ReverseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	out, err := th.tools.ReverseEngineer(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /verify-thinking
func (th *ThinkingHandler) Verify(c *gin.Context) {
	var req domain.VerifyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	out, err := th.tools.Verify(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}
