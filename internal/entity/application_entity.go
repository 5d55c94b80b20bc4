package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application links a loan report to a lender. Status is the only field a
// lender mutates after creation.
type Application struct {
	Id            uuid.UUID
	ReportId      uuid.UUID
	UserId        uuid.UUID
	LenderId      uuid.UUID
	Status        ApplicationStatus
	LenderMessage *string
	UserScore     int
	CreditScore   int
	CreditGrade   string
	LoanType      *LoanType
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
