package entity

import (
	"time"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// UserIdentity collects the identity fields read off the Aadhar and PAN
// documents at report time.
type UserIdentity struct {
	Name         string `json:"name"`
	DateOfBirth  string `json:"dateOfBirth"`
	Address      string `json:"address"`
	AadharNumber string `json:"aadharNumber"`
	PanNumber    string `json:"panNumber"`
}

type KycResults struct {
	Status             string   `json:"status"`
	DocumentsSubmitted []string `json:"documentsSubmitted"`
	DocumentsVerified  []string `json:"documentsVerified"`
}

type FinancialStability struct {
	MonthlyIncome    float64 `json:"monthlyIncome"`
	MonthlyExpenses  float64 `json:"monthlyExpenses"`
	Savings          float64 `json:"savings"`
	EmiObligations   float64 `json:"emiObligations"`
	DisposableIncome float64 `json:"disposableIncome"`
}

type LoanEligibility struct {
	Eligible          bool      `json:"eligible"`
	MaxLoanAmount     float64   `json:"maxLoanAmount"`
	RecommendedTenure int       `json:"recommendedTenure"`
	RiskLevel         RiskLevel `json:"riskLevel"`
}

// LoanReport is a point-in-time snapshot produced once per KYC completion.
// It is never mutated after creation.
type LoanReport struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	LenderId           uuid.UUID
	UserIdentity       UserIdentity
	KycResults         KycResults
	CreditScore        int
	CreditGrade        string
	FinancialStability FinancialStability
	LoanEligibility    LoanEligibility
	UserScore          int
	CreatedAt          time.Time
}
