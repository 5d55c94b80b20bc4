package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lender struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string    `gorm:"type:varchar(255);not null"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	CompanyName        string    `gorm:"type:varchar(255)"`
	RegistrationNumber string    `gorm:"type:varchar(100)"`
	LoanTypes          datatypes.JSON
	IsActive           bool      `gorm:"default:true"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (Lender) TableName() string {
	return "lenders"
}
