package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/engagement"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/interfaces/http/middleware"
)

// AppointmentHandler handles appointment lifecycle HTTP requests
type AppointmentHandler struct {
	BaseHandler
	appointmentService *engagement.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *engagement.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// Request godoc
// @Summary      Request an appointment
// @Description  Book a slot with a verified advocate; the slot must not overlap a confirmed appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        request body engagement.RequestAppointmentRequest true "Slot details"
// @Success      201 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments [post]
func (h *AppointmentHandler) Request(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req engagement.RequestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Request(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, appointment)
}

// GetByID godoc
// @Summary      Get an appointment
// @Description  Return an appointment visible to the caller
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Success      200 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// ListMine godoc
// @Summary      List own appointments
// @Description  Page through the caller's appointments, as client or as advocate depending on role
// @Tags         appointments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status" Enums(requested, confirmed, completed, cancelled, rejected)
// @Param        upcoming query bool false "Only future appointments"
// @Success      200 {object} dto.Response{data=[]engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments [get]
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req engagement.ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	var result *shared.Paginated[engagement.AppointmentResponse]
	if middleware.GetJWTRole(c) == "advocate" {
		result, err = h.appointmentService.ListForAdvocate(c.Request.Context(), userID, req)
	} else {
		result, err = h.appointmentService.ListForClient(c.Request.Context(), userID, req)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Confirm godoc
// @Summary      Confirm an appointment
// @Description  Advocate accepts a requested appointment; triggers calendar sync
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Success      200 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.Confirm(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Reject godoc
// @Summary      Reject an appointment request
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Param        request body engagement.RejectAppointmentRequest false "Rejection reason"
// @Success      200 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id}/reject [post]
func (h *AppointmentHandler) Reject(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req engagement.RejectAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	appointment, err := h.appointmentService.Reject(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Cancel godoc
// @Summary      Cancel an appointment
// @Description  Either party cancels a requested or confirmed appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Param        request body engagement.CancelAppointmentRequest true "Cancellation reason"
// @Success      200 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req engagement.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Cancel(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Reschedule godoc
// @Summary      Reschedule an appointment
// @Description  Move an appointment to a new slot; the appointment returns to requested
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Param        request body engagement.RescheduleAppointmentRequest true "New slot"
// @Success      200 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req engagement.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Reschedule(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Complete godoc
// @Summary      Complete an appointment
// @Description  Advocate marks a confirmed appointment as held
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Success      200 {object} dto.Response{data=engagement.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.Complete(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}
