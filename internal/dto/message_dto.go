package dto

import (
	"time"

	"github.com/google/uuid"

	"loan-marketplace-be/internal/entity"
)

type SendLenderMessageRequest struct {
	UserId           string                     `json:"userId" validate:"required,uuid"`
	Message          string                     `json:"message" validate:"required"`
	Attachments      []entity.MessageAttachment `json:"attachments"`
	IsSanctionLetter bool                       `json:"isSanctionLetter"`
}

type SendUserMessageRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	LenderId  string `json:"lenderId" validate:"required,uuid"`
	Message   string `json:"message" validate:"required"`
	UserId    string `json:"userId" validate:"omitempty,uuid"`
}

type MessageResponse struct {
	Id               uuid.UUID                  `json:"id"`
	LenderId         uuid.UUID                  `json:"lenderId"`
	UserId           uuid.UUID                  `json:"userId"`
	IsLender         bool                       `json:"isLender"`
	Message          string                     `json:"message"`
	Attachments      []entity.MessageAttachment `json:"attachments,omitempty"`
	IsSanctionLetter bool                       `json:"isSanctionLetter"`
	CreatedAt        time.Time                  `json:"createdAt"`
}

type ConversationResponse struct {
	Messages   []MessageResponse `json:"messages"`
	LenderName string            `json:"lenderName,omitempty"`
}
