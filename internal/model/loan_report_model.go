package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LoanReport struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID `gorm:"type:uuid;not null;index"`
	LenderId           uuid.UUID `gorm:"type:uuid;index"`
	UserIdentity       datatypes.JSON
	KycResults         datatypes.JSON
	CreditScore        int
	CreditGrade        string `gorm:"type:varchar(4)"`
	FinancialStability datatypes.JSON
	LoanEligibility    datatypes.JSON
	UserScore          int
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (LoanReport) TableName() string {
	return "loan_reports"
}
