package controllers

import (
	"context"

	"deutschklasse_go/services/chat"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatController struct {
	Chat *chat.Service
}

func NewChatController(chatService *chat.Service) *ChatController {
	return &ChatController{Chat: chatService}
}

// ChatRequest represents the chat message body
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// SendMessage relays one chat message. A missing sessionId starts a new
// conversation; the id comes back in the response so the client can continue
// it.
func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Message == "" {
		return fail(c, fiber.StatusBadRequest, "缺少消息内容")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = cc.Chat.NewSessionID()
	}

	reply := cc.Chat.Send(c.Context(), sessionID, req.Message)
	return c.JSON(fiber.Map{
		"reply":     reply,
		"sessionId": sessionID,
	})
}

// EndSession discards a conversation explicitly.
func (cc *ChatController) EndSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return fail(c, fiber.StatusBadRequest, "缺少会话ID")
	}
	if err := cc.Chat.EndSession(c.Context(), sessionID); err != nil {
		logrus.WithError(err).Warn("Failed to end chat session")
	}
	return ok(c, fiber.Map{"sessionId": sessionID}, "会话已结束")
}

// wsMessage is the wire format on the chat websocket.
type wsMessage struct {
	Message string `json:"message"`
}

type wsReply struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// HandleWebSocket runs an interactive chat over one websocket connection. The
// connection owns one session; every text frame is relayed and answered in
// order.
func (cc *ChatController) HandleWebSocket(conn *fiberws.Conn) {
	sessionID := conn.Query("session_id")
	if sessionID == "" {
		sessionID = cc.Chat.NewSessionID()
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Message == "" {
			continue
		}

		reply := cc.Chat.Send(context.Background(), sessionID, msg.Message)
		if err := conn.WriteJSON(wsReply{Reply: reply, SessionID: sessionID}); err != nil {
			break
		}
	}
}
