package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/directory"
)

// MatchingHandler handles advocate matching HTTP requests
type MatchingHandler struct {
	BaseHandler
	matchingService *directory.MatchingService
}

// NewMatchingHandler creates a new matching handler
func NewMatchingHandler(matchingService *directory.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		matchingService: matchingService,
	}
}

// Match godoc
// @Summary      Match advocates to a legal need
// @Description  Rank verified, available advocates against the requested specialization, location and language
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        request body directory.MatchRequest true "Matching criteria"
// @Success      200 {object} dto.Response{data=[]directory.MatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /matching [post]
func (h *MatchingHandler) Match(c *gin.Context) {
	var req directory.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	matches, err := h.matchingService.Match(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, matches)
}
