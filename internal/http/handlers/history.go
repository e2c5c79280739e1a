package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http/response"
	"github.com/abdos10/think-like-genius/internal/services"
)

type HistoryHandler struct {
	history services.HistoryService
}

func NewHistoryHandler(history services.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// GET /tab-history/:tabId
func (hh *HistoryHandler) GetTab(c *gin.Context) {
	tab, err := hh.history.GetTab(c.Request.Context(), c.Param("tabId"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, tab)
}

// PUT /tab-history/:tabId
// body: { "title"?: "...", "content": <any json> }
func (hh *HistoryHandler) SaveTab(c *gin.Context) {
	var req services.SaveTabInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, invalidBody)
		return
	}
	tab, err := hh.history.SaveTab(c.Request.Context(), c.Param("tabId"), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, tab)
}

// GET /history/:kind?limit=&source=local|remote
func (hh *HistoryHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	out, err := hh.history.List(c.Request.Context(), c.Param("kind"), limit, c.Query("source"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}
