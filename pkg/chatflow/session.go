package chatflow

import (
	"time"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/pkg/credit"
)

// Step names the position of a conversation in the onboarding flow. The
// values are part of the stored session format and the HTTP contract.
type Step string

const (
	StepGreeting         Step = "greeting"
	StepAskName          Step = "ask_name"
	StepAskLoanPurpose   Step = "ask_loan_purpose"
	StepShowLoanTypes    Step = "show_loan_types"
	StepAskLoanAmount    Step = "ask_loan_amount"
	StepEligibilityCheck Step = "eligibility_check"
	StepShowLenders      Step = "show_lenders"
	StepDocumentUpload   Step = "document_upload"
	StepKycCollection    Step = "kyc_collection"
	StepKycReady         Step = "kyc_ready"
	StepReportGenerated  Step = "report_generated"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// UploadedDocument is the per-document progress entry the upload endpoint
// appends while the borrower works through the checklist.
type UploadedDocument struct {
	Type       string    `json:"type"`
	Url        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Context carries everything the flow has learned about the borrower so
// far. Zero values mean "not collected yet".
type Context struct {
	Name                 string             `json:"name,omitempty"`
	LoanPurpose          string             `json:"loanPurpose,omitempty"`
	SelectedLoanType     *entity.LoanType   `json:"selectedLoanType,omitempty"`
	LoanAmount           float64            `json:"loanAmount,omitempty"`
	Phone                string             `json:"phone,omitempty"`
	Pan                  string             `json:"pan,omitempty"`
	CreditScore          *int               `json:"creditScore,omitempty"`
	CreditGrade          string             `json:"creditGrade,omitempty"`
	CreditHistory        *credit.History    `json:"creditHistory,omitempty"`
	MatchingLenders      []entity.LoanOffer `json:"matchingLenders,omitempty"`
	SelectedLender       string             `json:"selectedLender,omitempty"`
	SelectedLenderName   string             `json:"selectedLenderName,omitempty"`
	SelectedOffer        *entity.LoanOffer  `json:"selectedOffer,omitempty"`
	RequiredDocuments    []string           `json:"requiredDocuments,omitempty"`
	UploadedDocuments    []UploadedDocument `json:"uploadedDocuments,omitempty"`
	CurrentDocumentIndex int                `json:"currentDocumentIndex,omitempty"`
}

// Session is one borrower conversation. It is serialized as JSON into the
// session store between turns.
type Session struct {
	SessionId   string    `json:"sessionId"`
	UserId      string    `json:"userId,omitempty"`
	Messages    []Message `json:"messages"`
	CurrentStep Step      `json:"currentStep"`
	Context     Context   `json:"context"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewSession(sessionId string) *Session {
	now := time.Now()
	return &Session{
		SessionId:   sessionId,
		Messages:    []Message{},
		CurrentStep: StepGreeting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
