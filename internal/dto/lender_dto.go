package dto

import (
	"time"

	"github.com/google/uuid"

	"loan-marketplace-be/internal/entity"
)

type RegisterLenderRequest struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=8"`
	CompanyName        string   `json:"companyName" validate:"required"`
	RegistrationNumber string   `json:"registrationNumber" validate:"required"`
	LoanTypes          []string `json:"loanTypes" validate:"dive,oneof=Personal Business Home Vehicle Education Gold"`
}

type RegisterLenderResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	LenderId uuid.UUID `json:"lenderId"`
}

type LoginLenderRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LenderProfile struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"companyName"`
}

type LoginLenderResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	Lender  LenderProfile `json:"lender"`
}

type ApplicantSummary struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// LenderApplicationResponse is one application row enriched with its report
// and applicant identity.
type LenderApplicationResponse struct {
	Id            uuid.UUID          `json:"id"`
	ReportId      uuid.UUID          `json:"reportId"`
	UserId        uuid.UUID          `json:"userId"`
	Status        string             `json:"status"`
	UserScore     int                `json:"userScore"`
	CreditScore   int                `json:"creditScore"`
	CreditGrade   string             `json:"creditGrade"`
	LoanType      *entity.LoanType   `json:"loanType"`
	LenderMessage *string            `json:"lenderMessage,omitempty"`
	Report        *entity.LoanReport `json:"report"`
	User          *ApplicantSummary  `json:"user"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// LenderReportResponse pairs a loan report with the application it backs.
type LenderReportResponse struct {
	ApplicationId uuid.UUID          `json:"applicationId"`
	Status        string             `json:"status"`
	Report        *entity.LoanReport `json:"report"`
}

type DecideApplicationRequest struct {
	ApplicationId string `json:"applicationId" validate:"required,uuid"`
	Action        string `json:"action" validate:"required,oneof=approve reject"`
	Message       string `json:"message"`
}

type DecideApplicationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
