package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"type:varchar(255)"`
	Phone            *string   `gorm:"type:varchar(20);uniqueIndex"`
	Pan              *string   `gorm:"type:varchar(10);uniqueIndex"`
	Email            *string   `gorm:"type:varchar(255)"`
	CreditScore      *int
	CreditGrade      *string `gorm:"type:varchar(4)"`
	LoanPurpose      *string `gorm:"type:text"`
	SelectedLoanType *string `gorm:"type:varchar(20)"`
	UserScore        *int
	KycStatus        string    `gorm:"type:varchar(20);default:pending"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
