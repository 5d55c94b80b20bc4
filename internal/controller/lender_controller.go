package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/pkg/serverutils"
	"loan-marketplace-be/internal/service"
)

type ILenderController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Applications(ctx *fiber.Ctx) error
	Reports(ctx *fiber.Ctx) error
	Decide(ctx *fiber.Ctx) error
	Conversation(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type lenderController struct {
	lenderService  service.ILenderService
	messageService service.IMessageService
}

func NewLenderController(lenderService service.ILenderService, messageService service.IMessageService) ILenderController {
	return &lenderController{
		lenderService:  lenderService,
		messageService: messageService,
	}
}

func (c *lenderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lenders")
	h.Post("register", c.Register)
	h.Post("login", c.Login)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Get("applications", c.Applications)
	protected.Get("reports", c.Reports)
	protected.Post("applications/decide", c.Decide)
	protected.Get("messages/:userId", c.Conversation)
	protected.Post("messages", c.SendMessage)
}

func (c *lenderController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterLenderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lenderService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *lenderController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginLenderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lenderService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *lenderController) Applications(ctx *fiber.Ctx) error {
	lenderId, err := lenderIdFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.lenderService.Applications(ctx.Context(), lenderId)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success":      true,
		"applications": res,
	})
}

func (c *lenderController) Reports(ctx *fiber.Ctx) error {
	lenderId, err := lenderIdFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.lenderService.Reports(ctx.Context(), lenderId)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"reports": res,
	})
}

func (c *lenderController) Decide(ctx *fiber.Ctx) error {
	lenderId, err := lenderIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.DecideApplicationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lenderService.Decide(ctx.Context(), lenderId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *lenderController) Conversation(ctx *fiber.Ctx) error {
	lenderId, err := lenderIdFromToken(ctx)
	if err != nil {
		return err
	}

	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid userId")
	}

	res, err := c.messageService.LenderConversation(ctx.Context(), lenderId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *lenderController) SendMessage(ctx *fiber.Ctx) error {
	lenderId, err := lenderIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.SendLenderMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.SendFromLender(ctx.Context(), lenderId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func lenderIdFromToken(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("lender_id").(string)
	lenderId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	return lenderId, nil
}
