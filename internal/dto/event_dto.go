package dto

import "github.com/google/uuid"

// ApplicationSubmittedMessage is the internal bus payload emitted when a
// KYC run creates a new application.
type ApplicationSubmittedMessage struct {
	ApplicationId uuid.UUID `json:"application_id"`
	UserId        uuid.UUID `json:"user_id"`
	LenderId      uuid.UUID `json:"lender_id"`
	ApplicantName string    `json:"applicant_name"`
	LoanType      string    `json:"loan_type"`
	UserScore     int       `json:"user_score"`
}
