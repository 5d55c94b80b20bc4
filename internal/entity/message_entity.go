package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser   MessageRole = "user"
	MessageRoleLender MessageRole = "lender"
)

type MessageAttachment struct {
	Type string `json:"type"`
	Url  string `json:"url"`
	Name string `json:"name"`
}

// LenderMessage is one entry in the append-only (lender, user) conversation
// ledger.
type LenderMessage struct {
	Id               uuid.UUID
	LenderId         uuid.UUID
	UserId           uuid.UUID
	FromRole         MessageRole
	Message          string
	Attachments      []MessageAttachment
	IsSanctionLetter bool
	CreatedAt        time.Time
}
