package controller

import (
	"github.com/gofiber/fiber/v2"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/pkg/serverutils"
	"loan-marketplace-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("", c.Chat)
	h.Get(":sessionId", c.GetSession)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	sess, err := c.chatService.GetSession(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(sess)
}
