package controller

import (
	"github.com/gofiber/fiber/v2"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/pkg/serverutils"
	"loan-marketplace-be/internal/service"
)

type IKycController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
}

type kycController struct {
	kycService service.IKycService
}

func NewKycController(kycService service.IKycService) IKycController {
	return &kycController{
		kycService: kycService,
	}
}

func (c *kycController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/kyc")
	h.Post("process", c.Process)
}

func (c *kycController) Process(ctx *fiber.Ctx) error {
	var req dto.ProcessKycRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.kycService.Process(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
