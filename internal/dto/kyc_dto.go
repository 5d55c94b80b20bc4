package dto

import (
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/pkg/scoring"
)

type ProcessKycRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
}

type ProcessKycResponse struct {
	Success    bool               `json:"success"`
	Report     *entity.LoanReport `json:"report"`
	UserScore  scoring.UserScore  `json:"userScore"`
	LenderId   string             `json:"lenderId"`
	LenderName string             `json:"lenderName"`
	Message    string             `json:"message"`
}
