package entity

import (
	"time"

	"github.com/google/uuid"
)

type KycStatus string

const (
	KycStatusPending    KycStatus = "pending"
	KycStatusInProgress KycStatus = "in_progress"
	KycStatusCompleted  KycStatus = "completed"
)

// User is the durable borrower record. It is upserted the first time a
// session confirms an identity (phone or PAN) and enriched as the flow
// progresses.
type User struct {
	Id               uuid.UUID
	Name             string
	Phone            *string
	Pan              *string
	Email            *string
	CreditScore      *int
	CreditGrade      *string
	LoanPurpose      *string
	SelectedLoanType *LoanType
	UserScore        *int
	KycStatus        KycStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
