package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LenderMessage struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LenderId         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	FromRole         string    `gorm:"type:varchar(10);not null"`
	Message          string    `gorm:"type:text"`
	Attachments      datatypes.JSON
	IsSanctionLetter bool      `gorm:"default:false"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (LenderMessage) TableName() string {
	return "lender_messages"
}
