package controller

import (
	"strings"

	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/serverutils"
	"ai-summarizer-be/internal/service"
	"ai-summarizer-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const localSessionId = "session_id"

type IChatController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	SendMessageWithFile(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	UpdateTitle(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service       service.IChatService
	hub           *websocket.Hub
	maxUploadSize int64
}

func NewChatController(service service.IChatService, hub *websocket.Hub, maxUploadSize int64) IChatController {
	return &chatController{service: service, hub: hub, maxUploadSize: maxUploadSize}
}

func (c *chatController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/chat/sessions", jwtMiddleware)
	h.Post("", c.CreateSession)
	h.Get("", c.GetSessions)
	h.Post("/:id/messages", c.SendMessage)
	h.Post("/:id/messages/file", c.SendMessageWithFile)
	h.Get("/:id/history", c.GetHistory)
	h.Patch("/:id/title", c.UpdateTitle)
	h.Delete("/:id", c.DeleteSession)
	if c.hub != nil {
		h.Get("/:id/ws", c.upgrade, fiberws.New(c.serveWs))
	}
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), userId, req.Title)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Chat session created successfully", res))
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetUserSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), userId, sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) SendMessageWithFile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(ctx.FormValue("message"))
	if message == "" {
		return apperror.WithMessage(apperror.ErrValidation, "message is required", nil)
	}
	file, err := readUpload(ctx, "file", c.maxUploadSize)
	if err != nil {
		return err
	}

	res, err := c.service.SendMessageWithFile(ctx.UserContext(), userId, sessionId, message, file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetHistory(ctx.UserContext(), userId, sessionId, ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

// UpdateTitle takes the title from the JSON body or, failing that, ?title=.
func (c *chatController) UpdateTitle(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateTitleRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if req.Title == "" {
		req.Title = ctx.Query("title")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateTitle(ctx.UserContext(), userId, sessionId, req.Title)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session title updated successfully", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.UserContext(), userId, sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted successfully", nil))
}

// upgrade authorises the session before the handshake so failures are plain HTTP errors.
func (c *chatController) upgrade(ctx *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	if _, err := c.service.GetSession(ctx.UserContext(), userId, sessionId); err != nil {
		return err
	}
	ctx.Locals(localSessionId, sessionId)
	return ctx.Next()
}

func (c *chatController) serveWs(conn *fiberws.Conn) {
	userIdStr, _ := conn.Locals(serverutils.LocalUserId).(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		conn.Close()
		return
	}
	sessionId, ok := conn.Locals(localSessionId).(uuid.UUID)
	if !ok {
		conn.Close()
		return
	}
	websocket.ServeChat(c.hub, conn, c.service, userId, sessionId)
}
