package service

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/pkg/credit"
)

type ICreditService interface {
	Lookup(ctx context.Context, req *dto.CreditScoreRequest) (*dto.CreditScoreResponse, error)
}

type creditService struct {
	bureau credit.Bureau
}

func NewCreditService(bureau credit.Bureau) ICreditService {
	return &creditService{
		bureau: bureau,
	}
}

func (s *creditService) Lookup(ctx context.Context, req *dto.CreditScoreRequest) (*dto.CreditScoreResponse, error) {
	if req.Phone == "" && req.Pan == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Phone or PAN is required")
	}

	report, err := s.bureau.Lookup(ctx, req.Phone, req.Pan)
	if err != nil {
		return nil, err
	}

	return &dto.CreditScoreResponse{
		Success:       true,
		CreditScore:   report.Score,
		CreditGrade:   report.Grade,
		CreditHistory: report.History,
		ReportDate:    report.ReportDate,
	}, nil
}
