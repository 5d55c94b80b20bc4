package dto

import (
	"time"

	"github.com/google/uuid"

	"loan-marketplace-be/internal/entity"
)

type FindUserResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	CreditScore *int      `json:"creditScore"`
	CreditGrade *string   `json:"creditGrade"`
}

// ReportSummary is the slice of a loan report a borrower sees on their own
// application list.
type ReportSummary struct {
	LoanEligibility    entity.LoanEligibility    `json:"loanEligibility"`
	FinancialStability entity.FinancialStability `json:"financialStability"`
	UserScore          int                       `json:"userScore"`
}

type UserApplicationResponse struct {
	Id            uuid.UUID        `json:"id"`
	UserId        uuid.UUID        `json:"userId"`
	LenderId      uuid.UUID        `json:"lenderId"`
	LenderName    string           `json:"lenderName"`
	Status        string           `json:"status"`
	UserScore     int              `json:"userScore"`
	CreditScore   int              `json:"creditScore"`
	CreditGrade   string           `json:"creditGrade"`
	LoanType      *entity.LoanType `json:"loanType"`
	Report        *ReportSummary   `json:"report"`
	LenderMessage *string          `json:"lenderMessage,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
