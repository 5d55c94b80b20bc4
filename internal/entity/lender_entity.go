package entity

import (
	"time"

	"github.com/google/uuid"
)

type Lender struct {
	Id                 uuid.UUID
	Name               string
	Email              string
	PasswordHash       string
	CompanyName        string
	RegistrationNumber string
	LoanTypes          []LoanType
	IsActive           bool
	CreatedAt          time.Time
}
