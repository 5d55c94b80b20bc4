package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType is the closed set of KYC documents the flow collects.
type DocumentType string

const (
	DocumentTypeAadhar          DocumentType = "aadhar"
	DocumentTypePan             DocumentType = "pan"
	DocumentTypeBankStatement   DocumentType = "bank_statement"
	DocumentTypeIncomeProof     DocumentType = "income_proof"
	DocumentTypeCancelledCheque DocumentType = "cancelled_cheque"
	DocumentTypePassbook        DocumentType = "passbook"
	DocumentTypeSignature       DocumentType = "signature"
	DocumentTypeBiometric       DocumentType = "biometric"
)

// RequiredDocumentTypes is the fixed checklist, in prompting order.
// Completion is set-membership against this list; the order only decides
// which document is requested next.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeAadhar,
	DocumentTypePan,
	DocumentTypeBankStatement,
	DocumentTypeIncomeProof,
	DocumentTypeCancelledCheque,
	DocumentTypePassbook,
	DocumentTypeSignature,
	DocumentTypeBiometric,
}

// DocumentDisplayNames maps document types to the names shown in chat.
var DocumentDisplayNames = map[DocumentType]string{
	DocumentTypeAadhar:          "Aadhar Card",
	DocumentTypePan:             "PAN Card",
	DocumentTypeBankStatement:   "Bank Statement",
	DocumentTypeIncomeProof:     "Income Proof",
	DocumentTypeCancelledCheque: "Cancelled Cheque",
	DocumentTypePassbook:        "Passbook",
	DocumentTypeSignature:       "Signature Photo",
	DocumentTypeBiometric:       "Biometric Photo",
}

// ParseDocumentType validates a raw document type string.
func ParseDocumentType(s string) (DocumentType, bool) {
	for _, dt := range RequiredDocumentTypes {
		if string(dt) == s {
			return dt, true
		}
	}
	return "", false
}

// ExtractedData holds the fields the extraction provider pulled out of a
// document image. Which fields are populated depends on the document type.
type ExtractedData struct {
	Name           string          `json:"name,omitempty"`
	DateOfBirth    string          `json:"dateOfBirth,omitempty"`
	Address        string          `json:"address,omitempty"`
	AadharNumber   string          `json:"aadharNumber,omitempty"`
	PanNumber      string          `json:"panNumber,omitempty"`
	IncomeSummary  *IncomeSummary  `json:"incomeSummary,omitempty"`
	ExpenseSummary *ExpenseSummary `json:"expenseSummary,omitempty"`
	EmiObligations *EmiObligations `json:"emiObligations,omitempty"`
	Savings        float64         `json:"savings,omitempty"`
}

type IncomeSummary struct {
	MonthlyIncome float64 `json:"monthlyIncome"`
	AnnualIncome  float64 `json:"annualIncome"`
}

type ExpenseSummary struct {
	MonthlyExpenses float64            `json:"monthlyExpenses"`
	Categories      map[string]float64 `json:"categories,omitempty"`
}

type EmiObligations struct {
	TotalEMI float64   `json:"totalEMI"`
	Loans    []EmiLoan `json:"loans,omitempty"`
}

type EmiLoan struct {
	Lender          string  `json:"lender"`
	Amount          float64 `json:"amount"`
	RemainingTenure int     `json:"remainingTenure"`
}

// KycDocument is one stored document record. Durable storage may hold
// several records per (user, type); scoring reads the most recent one.
type KycDocument struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Type          DocumentType
	FileUrl       string
	ExtractedData ExtractedData
	UploadedAt    time.Time
}
