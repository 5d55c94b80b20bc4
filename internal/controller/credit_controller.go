package controller

import (
	"github.com/gofiber/fiber/v2"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/pkg/serverutils"
	"loan-marketplace-be/internal/service"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
	Lookup(ctx *fiber.Ctx) error
}

type creditController struct {
	creditService service.ICreditService
}

func NewCreditController(creditService service.ICreditService) ICreditController {
	return &creditController{
		creditService: creditService,
	}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	r.Post("/credit-score", c.Lookup)
}

func (c *creditController) Lookup(ctx *fiber.Ctx) error {
	var req dto.CreditScoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.creditService.Lookup(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
