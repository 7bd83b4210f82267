package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	appassistant "github.com/legallink/backend/internal/application/assistant"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/config"
)

// inboundMessage is one chat turn sent by the client. A missing
// session_id starts a new session on the first turn.
type inboundMessage struct {
	SessionID *uuid.UUID `json:"session_id"`
	Content   string     `json:"content"`
}

// outboundMessage is a frame sent to the client.
type outboundMessage struct {
	Type  string                  `json:"type"` // "reply" or "error"
	Reply *appassistant.ChatReply `json:"reply,omitempty"`
	Error *outboundError          `json:"error,omitempty"`
}

type outboundError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client is one assistant WebSocket connection.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan outboundMessage
	userID      uuid.UUID
	chatService *appassistant.ChatService
	cfg         config.ChatConfig
	turnTimeout time.Duration
	logger      *zap.Logger

	closeOnce sync.Once
}

func newClient(
	hub *Hub,
	conn *websocket.Conn,
	userID uuid.UUID,
	chatService *appassistant.ChatService,
	cfg config.ChatConfig,
	turnTimeout time.Duration,
	logger *zap.Logger,
) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan outboundMessage, 8),
		userID:      userID,
		chatService: chatService,
		cfg:         cfg,
		turnTimeout: turnTimeout,
		logger:      logger.With(zap.String("user_id", userID.String())),
	}
}

// close tears the connection down once. The read pump unblocks on the
// closed connection and unregisters the client.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		_ = c.conn.Close()
	})
}

// readPump reads chat turns until the connection drops. Turns are
// processed in order; a slow model response backpressures the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("WebSocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.sendError("INVALID_MESSAGE", "Message must be a JSON object with a content field")
			continue
		}
		if msg.Content == "" {
			c.sendError("INVALID_MESSAGE", "Message content is required")
			continue
		}

		c.handleTurn(msg)
	}
}

// handleTurn runs one assistant turn and queues the reply.
func (c *Client) handleTurn(msg inboundMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), c.turnTimeout)
	defer cancel()

	reply, err := c.chatService.Send(ctx, c.userID, appassistant.SendMessageRequest{
		SessionID: msg.SessionID,
		Content:   msg.Content,
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			c.sendError(domainErr.Code, domainErr.Message)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			c.sendError("ASSISTANT_UNAVAILABLE", "The assistant took too long to answer. Please try again")
			return
		}
		c.logger.Error("Assistant turn failed", zap.Error(err))
		c.sendError("INTERNAL_ERROR", "Something went wrong. Please try again")
		return
	}

	c.enqueue(outboundMessage{Type: "reply", Reply: reply})
}

func (c *Client) sendError(code, message string) {
	c.enqueue(outboundMessage{
		Type:  "error",
		Error: &outboundError{Code: code, Message: message},
	})
}

// enqueue queues a frame for the write pump, dropping the connection
// when the client cannot keep up.
func (c *Client) enqueue(msg outboundMessage) {
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("WebSocket send buffer full, dropping connection")
		c.close()
	}
}

// writePump writes queued frames and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
