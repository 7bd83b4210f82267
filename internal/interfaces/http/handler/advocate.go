package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/directory"
)

// AdvocateHandler handles advocate directory HTTP requests
type AdvocateHandler struct {
	BaseHandler
	advocateService *directory.AdvocateService
}

// NewAdvocateHandler creates a new advocate handler
func NewAdvocateHandler(advocateService *directory.AdvocateService) *AdvocateHandler {
	return &AdvocateHandler{
		advocateService: advocateService,
	}
}

// Register godoc
// @Summary      Create an advocate profile
// @Description  Register the authenticated user as an advocate pending verification
// @Tags         advocates
// @Accept       json
// @Produce      json
// @Param        request body directory.RegisterAdvocateRequest true "Profile details"
// @Success      201 {object} dto.Response{data=directory.AdvocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advocates [post]
func (h *AdvocateHandler) Register(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directory.RegisterAdvocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	advocate, err := h.advocateService.Register(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, advocate)
}

// GetMine godoc
// @Summary      Get own advocate profile
// @Tags         advocates
// @Produce      json
// @Success      200 {object} dto.Response{data=directory.AdvocateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advocates/me [get]
func (h *AdvocateHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	advocate, err := h.advocateService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, advocate)
}

// GetByID godoc
// @Summary      Get an advocate profile
// @Tags         advocates
// @Produce      json
// @Param        id path string true "Advocate ID"
// @Success      200 {object} dto.Response{data=directory.AdvocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /advocates/{id} [get]
func (h *AdvocateHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advocate ID")
		return
	}

	advocate, err := h.advocateService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, advocate)
}

// UpdateProfile godoc
// @Summary      Update own advocate profile
// @Tags         advocates
// @Accept       json
// @Produce      json
// @Param        request body directory.UpdateAdvocateProfileRequest true "Profile fields"
// @Success      200 {object} dto.Response{data=directory.AdvocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advocates/me [put]
func (h *AdvocateHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directory.UpdateAdvocateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	advocate, err := h.advocateService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, advocate)
}

// SetAvailability godoc
// @Summary      Toggle own availability
// @Description  Mark the advocate as accepting or not accepting new appointments
// @Tags         advocates
// @Accept       json
// @Produce      json
// @Param        request body directory.SetAvailabilityRequest true "Availability flag"
// @Success      200 {object} dto.Response{data=directory.AdvocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advocates/me/availability [put]
func (h *AdvocateHandler) SetAvailability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directory.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	advocate, err := h.advocateService.SetAvailability(c.Request.Context(), userID, *req.Available)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, advocate)
}

// Search godoc
// @Summary      Search the advocate directory
// @Description  Page through verified advocates filtered by specialization, location, language or fee
// @Tags         advocates
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        keyword query string false "Free-text match"
// @Param        specialization query string false "Filter by specialization"
// @Param        city query string false "Filter by city"
// @Param        state query string false "Filter by state"
// @Param        language query string false "Filter by language"
// @Param        fee_ceiling query string false "Maximum consultation fee"
// @Param        available_only query bool false "Only advocates accepting work"
// @Success      200 {object} dto.Response{data=[]directory.AdvocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /advocates [get]
func (h *AdvocateHandler) Search(c *gin.Context) {
	var req directory.SearchAdvocatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.advocateService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListVerifications godoc
// @Summary      List verification requests
// @Description  Page through the advocate verification queue
// @Tags         advocates
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by verification status" Enums(pending, verified, rejected)
// @Success      200 {object} dto.Response{data=[]directory.AdvocateResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/verifications [get]
func (h *AdvocateHandler) ListVerifications(c *gin.Context) {
	var req directory.ListVerificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.advocateService.ListVerifications(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ReviewVerification godoc
// @Summary      Review a verification request
// @Description  Approve or reject an advocate's verification
// @Tags         advocates
// @Accept       json
// @Produce      json
// @Param        id path string true "Advocate ID"
// @Param        request body directory.ReviewVerificationRequest true "Decision"
// @Success      200 {object} dto.Response{data=directory.AdvocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/verifications/{id} [post]
func (h *AdvocateHandler) ReviewVerification(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advocate ID")
		return
	}

	var req directory.ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	advocate, err := h.advocateService.ReviewVerification(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, advocate)
}

// Suspend godoc
// @Summary      Suspend an advocate
// @Tags         advocates
// @Produce      json
// @Param        id path string true "Advocate ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/advocates/{id}/suspend [post]
func (h *AdvocateHandler) Suspend(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advocate ID")
		return
	}

	if err := h.advocateService.Suspend(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Reinstate godoc
// @Summary      Reinstate a suspended advocate
// @Tags         advocates
// @Produce      json
// @Param        id path string true "Advocate ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/advocates/{id}/reinstate [post]
func (h *AdvocateHandler) Reinstate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advocate ID")
		return
	}

	if err := h.advocateService.Reinstate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
