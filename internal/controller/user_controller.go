package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/pkg/serverutils"
	"loan-marketplace-be/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Find(ctx *fiber.Ctx) error
	Applications(ctx *fiber.Ctx) error
	Conversation(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type userController struct {
	userService    service.IUserService
	messageService service.IMessageService
}

func NewUserController(userService service.IUserService, messageService service.IMessageService) IUserController {
	return &userController{
		userService:    userService,
		messageService: messageService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Get("find", c.Find)
	h.Get("applications", c.Applications)
	h.Get("messages", c.Conversation)
	h.Post("messages", c.SendMessage)
}

func (c *userController) Find(ctx *fiber.Ctx) error {
	phone := ctx.Query("phone")
	if phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone is required")
	}

	res, err := c.userService.FindByPhone(ctx.Context(), phone)
	if err != nil {
		return err
	}

	// res is nil when no borrower matches; the client expects user: null.
	return ctx.JSON(fiber.Map{"user": res})
}

func (c *userController) Applications(ctx *fiber.Ctx) error {
	res, err := c.userService.Applications(ctx.Context(), ctx.Query("sessionId"), ctx.Query("userId"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"applications": res})
}

func (c *userController) Conversation(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid userId")
	}
	lenderId, err := uuid.Parse(ctx.Query("lenderId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lenderId")
	}

	res, err := c.messageService.UserConversation(ctx.Context(), userId, lenderId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *userController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendUserMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.SendFromUser(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}
