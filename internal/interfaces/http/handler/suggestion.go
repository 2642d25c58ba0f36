package handler

import (
	suggestionapp "github.com/erurang/wooyangcrm-sub010/internal/application/suggestion"
	"github.com/gin-gonic/gin"
)

// SuggestionHandler serves auto-order reorder suggestions
type SuggestionHandler struct {
	BaseHandler
	suggestionService *suggestionapp.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(suggestionService *suggestionapp.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// List returns reorder suggestions ranked by urgency
func (h *SuggestionHandler) List(c *gin.Context) {
	var filter suggestionapp.SuggestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.suggestionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
