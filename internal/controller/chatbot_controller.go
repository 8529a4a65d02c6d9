package controller

import (
	"errors"

	"otakupal-be/internal/dto"
	"otakupal-be/internal/pkg/serverutils"
	"otakupal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	SendChat(ctx *fiber.Ctx) error
	NewSession(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	LoadSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	MainView(ctx *fiber.Ctx) error
	RegisterRoutes(r fiber.Router)
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{chatbotService: chatbotService}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	group := r.Group("/chat/v1", serverutils.JwtMiddleware)
	group.Get("/", c.MainView)
	group.Post("/message", c.SendChat)
	group.Post("/session", c.NewSession)
	group.Get("/sessions", c.GetSessions)
	group.Get("/session/:id/messages", c.LoadSession)
	group.Delete("/session/:id", c.DeleteSession)
}

// SendChat returns the raw turn payload, not the standard envelope. The
// chat client consumes response/current_chat_id/refresh_history directly.
func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendChat(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatbotController) NewSession(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.CreateSession(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatbotController) GetSessions(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.GetAllSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", res))
}

func (c *chatbotController) LoadSession(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid session id"))
	}

	res, err := c.chatbotService.GetChatHistory(ctx.UserContext(), userId, sessionId)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, err.Error()))
		}
		return err
	}
	return ctx.JSON(res)
}

// DeleteSession returns the raw payload with the replacement session id.
func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid session id"))
	}

	res, err := c.chatbotService.DeleteSession(ctx.UserContext(), userId, sessionId)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, err.Error()))
		}
		return err
	}
	return ctx.JSON(res)
}

func (c *chatbotController) MainView(ctx *fiber.Ctx) error {
	userId, err := userIdFromLocals(ctx)
	if err != nil {
		return err
	}
	username, _ := ctx.Locals("username").(string)

	res, err := c.chatbotService.GetMainView(ctx.UserContext(), userId, username)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Main view retrieved", res))
}
