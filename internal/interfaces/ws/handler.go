package ws

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	appassistant "github.com/legallink/backend/internal/application/assistant"
	"github.com/legallink/backend/internal/infrastructure/auth"
	"github.com/legallink/backend/internal/infrastructure/config"
)

// Handler upgrades authenticated requests to assistant WebSocket
// connections.
type Handler struct {
	hub         *Hub
	chatService *appassistant.ChatService
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	cfg         config.ChatConfig
	turnTimeout time.Duration
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewHandler creates a new WebSocket handler. checkOrigin receives the
// request Origin header; a nil func accepts only same-origin requests
// per gorilla's default.
func NewHandler(
	hub *Hub,
	chatService *appassistant.ChatService,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	cfg config.ChatConfig,
	turnTimeout time.Duration,
	checkOrigin func(r *http.Request) bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		hub:         hub,
		chatService: chatService,
		jwtService:  jwtService,
		blacklist:   blacklist,
		cfg:         cfg,
		turnTimeout: turnTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Serve handles GET /ws/chat. Browsers cannot set an
// Authorization header on the WebSocket handshake, so the access token
// is also accepted as a token query parameter.
func (h *Handler) Serve(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": "Access token is required"},
		})
		return
	}

	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_TOKEN", "message": "Invalid or expired access token"},
		})
		return
	}

	if revoked, err := h.blacklist.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "TOKEN_REVOKED", "message": "Access token has been revoked"},
		})
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_TOKEN", "message": "Invalid access token claims"},
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		h.logger.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(h.hub, conn, userID, h.chatService, h.cfg, h.turnTimeout, h.logger)
	if !h.hub.register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// extractToken pulls the access token from the Authorization header or
// the token query parameter.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
