package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/assistant"
)

// AssistantHandler handles the REST surface of the legal guidance
// assistant. The WebSocket endpoint shares the same chat service.
type AssistantHandler struct {
	BaseHandler
	chatService *assistant.ChatService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(chatService *assistant.ChatService) *AssistantHandler {
	return &AssistantHandler{
		chatService: chatService,
	}
}

// StartSession godoc
// @Summary      Start a chat session
// @Tags         assistant
// @Produce      json
// @Success      201 {object} dto.Response{data=assistant.SessionResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assistant/sessions [post]
func (h *AssistantHandler) StartSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.chatService.StartSession(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// Send godoc
// @Summary      Send a message to the assistant
// @Description  Run one assistant turn; omit session_id to start a new session
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request body assistant.SendMessageRequest true "Message"
// @Success      200 {object} dto.Response{data=assistant.ChatReply}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assistant/messages [post]
func (h *AssistantHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req assistant.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reply)
}

// History godoc
// @Summary      Get a session transcript
// @Tags         assistant
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]assistant.MessageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assistant/sessions/{id}/messages [get]
func (h *AssistantHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req assistant.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.chatService.History(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListSessions godoc
// @Summary      List own active sessions
// @Tags         assistant
// @Produce      json
// @Success      200 {object} dto.Response{data=[]string}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assistant/sessions [get]
func (h *AssistantHandler) ListSessions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sessions, err := h.chatService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sessions)
}

// EndSession godoc
// @Summary      End a chat session
// @Tags         assistant
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assistant/sessions/{id} [delete]
func (h *AssistantHandler) EndSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.chatService.EndSession(c.Request.Context(), userID, sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
