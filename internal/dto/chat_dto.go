package dto

import (
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/pkg/chatflow"
)

type ChatRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	// Pointer so a first-contact empty string passes validation while a
	// missing key is still rejected.
	Message *string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Response        string             `json:"response"`
	CurrentStep     string             `json:"currentStep"`
	Context         chatflow.Context   `json:"context"`
	MatchingLenders []entity.LoanOffer `json:"matchingLenders"`
}
