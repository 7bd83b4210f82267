package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/moderation"
)

// RatingHandler handles advocate rating HTTP requests
type RatingHandler struct {
	BaseHandler
	ratingService *moderation.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *moderation.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// Rate godoc
// @Summary      Rate an advocate
// @Description  Create or revise the caller's rating; requires a completed appointment with the advocate
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        request body moderation.RateAdvocateRequest true "Rating"
// @Success      200 {object} dto.Response{data=moderation.RatingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ratings [post]
func (h *RatingHandler) Rate(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req moderation.RateAdvocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rating)
}

// Delete godoc
// @Summary      Delete own rating
// @Tags         ratings
// @Produce      json
// @Param        id path string true "Rating ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ratings/{id} [delete]
func (h *RatingHandler) Delete(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rating ID")
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), clientID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListByAdvocate godoc
// @Summary      List ratings for an advocate
// @Tags         ratings
// @Produce      json
// @Param        id path string true "Advocate ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]moderation.RatingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /advocates/{id}/ratings [get]
func (h *RatingHandler) ListByAdvocate(c *gin.Context) {
	advocateID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advocate ID")
		return
	}

	var req moderation.ListRatingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.ratingService.ListByAdvocate(c.Request.Context(), advocateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
