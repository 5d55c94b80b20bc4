package model

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReportId      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	LenderId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(20);default:pending;index"`
	LenderMessage *string   `gorm:"type:text"`
	UserScore     int
	CreditScore   int
	CreditGrade   string    `gorm:"type:varchar(4)"`
	LoanType      *string   `gorm:"type:varchar(20)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Application) TableName() string {
	return "applications"
}
