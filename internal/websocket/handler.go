package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	FrameReply = "reply"
	FrameError = "error"
)

// Frame is what the server writes to chat connections.
type Frame struct {
	Type    string                   `json:"type"`
	Data    *dto.SendMessageResponse `json:"data,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// ParseInbound accepts either {"message": "...", "context": "..."} or a bare
// text frame, which is taken as the message itself.
func ParseInbound(data []byte) *dto.SendMessageRequest {
	var req dto.SendMessageRequest
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal(data, &req) == nil {
		return &req
	}
	return &dto.SendMessageRequest{Message: trimmed}
}

// ServeChat runs a chat connection for an already authorised user and session.
// Every text frame is one turn; replies go to every watcher of the session.
func ServeChat(hub *Hub, c *websocket.Conn, chat service.IChatService, userID, sessionID uuid.UUID) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &Client{Hub: hub, Conn: c, UserID: userID, SessionID: sessionID, Send: make(chan []byte, 256), ctx: ctx, cancel: cancel}
	client.OnMessage = func(data []byte) {
		handleTurn(client, chat, data)
	}
	if !hub.Register(client) {
		c.Close()
		return
	}
	go func() {
		select {
		case <-hub.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	go client.writePump()
	client.readPump()
}

func handleTurn(c *Client, chat service.IChatService, data []byte) {
	req := ParseInbound(data)
	if strings.TrimSpace(req.Message) == "" {
		c.reply(Frame{Type: FrameError, Message: "message cannot be empty"})
		return
	}

	ctx := c.ctx
	resp, err := chat.SendMessage(ctx, c.UserID, c.SessionID, req)
	if err != nil {
		message := "internal server error"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			message = appErr.Message
			if detail, ok := apperror.Detail(err); ok {
				message = detail
			}
		}
		c.Hub.logger.Warn("Hub", "Chat turn failed", map[string]interface{}{
			"session_id": c.SessionID.String(),
			"error":      err.Error(),
		})
		c.reply(Frame{Type: FrameError, Message: message})
		return
	}

	payload, err := json.Marshal(Frame{Type: FrameReply, Data: resp})
	if err != nil {
		return
	}
	c.Hub.Publish(ctx, c.SessionID, payload)
}

// reply writes only to this connection.
func (c *Client) reply(frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	c.Hub.mu.RLock()
	defer c.Hub.mu.RUnlock()
	for _, registered := range c.Hub.clients[c.SessionID] {
		if registered == c {
			select {
			case c.Send <- payload:
			default:
			}
			return
		}
	}
}
