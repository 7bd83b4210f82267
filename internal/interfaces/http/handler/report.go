package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/moderation"
)

// ReportHandler handles advocate report HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService *moderation.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *moderation.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// File godoc
// @Summary      Report an advocate
// @Description  File a complaint against an advocate for admin review
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        request body moderation.FileReportRequest true "Report details"
// @Success      201 {object} dto.Response{data=moderation.ReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports [post]
func (h *ReportHandler) File(c *gin.Context) {
	reporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req moderation.FileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.File(c.Request.Context(), reporterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, report)
}

// GetByID godoc
// @Summary      Get a report
// @Description  Return a report visible to the caller; admins see every report
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} dto.Response{data=moderation.ReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/{id} [get]
func (h *ReportHandler) GetByID(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), actorID, isAdmin(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ListOwn godoc
// @Summary      List own reports
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]moderation.ReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports [get]
func (h *ReportHandler) ListOwn(c *gin.Context) {
	reporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req moderation.ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reportService.ListOwn(c.Request.Context(), reporterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListAll godoc
// @Summary      List all reports
// @Description  Page through every report, optionally filtered by advocate, status or reason
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        advocate_id query string false "Filter by advocate"
// @Param        status query string false "Filter by status" Enums(open, under_review, resolved, dismissed)
// @Param        reason query string false "Filter by reason"
// @Success      200 {object} dto.Response{data=[]moderation.ReportResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports [get]
func (h *ReportHandler) ListAll(c *gin.Context) {
	var req moderation.ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reportService.ListAll(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// StartReview godoc
// @Summary      Start reviewing a report
// @Description  Claim an open report for review
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} dto.Response{data=moderation.ReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports/{id}/review [post]
func (h *ReportHandler) StartReview(c *gin.Context) {
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.StartReview(c.Request.Context(), reviewerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Close godoc
// @Summary      Close a report
// @Description  Resolve or dismiss a report, optionally suspending the advocate
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id path string true "Report ID"
// @Param        request body moderation.CloseReportRequest true "Decision"
// @Success      200 {object} dto.Response{data=moderation.ReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reports/{id}/close [post]
func (h *ReportHandler) Close(c *gin.Context) {
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	var req moderation.CloseReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.Close(c.Request.Context(), reviewerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
