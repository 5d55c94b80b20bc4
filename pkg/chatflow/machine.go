package chatflow

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/pkg/credit"
	"loan-marketplace-be/pkg/extraction"
	"loan-marketplace-be/pkg/matching"
)

// DefaultMatchingScore is used to shortlist lenders before KYC produces the
// real composite score.
const DefaultMatchingScore = 70

// Extractor pulls structured fields out of borrower utterances.
type Extractor interface {
	ExtractField(ctx context.Context, text string, kind extraction.FieldKind) (*extraction.FieldResult, error)
}

// Bureau answers credit lookups by phone or PAN.
type Bureau interface {
	Lookup(ctx context.Context, phone, pan string) (*credit.Report, error)
}

// OfferSource shortlists lender offers for a loan type and score.
type OfferSource interface {
	MatchingOffers(ctx context.Context, loanType entity.LoanType, userScore int) ([]entity.LoanOffer, error)
}

// BorrowerProfile is the identity snapshot persisted when eligibility is
// first established.
type BorrowerProfile struct {
	Name        string
	Phone       string
	Pan         string
	LoanPurpose string
	LoanType    *entity.LoanType
}

// Registrar upserts the borrower record keyed by phone or PAN.
type Registrar interface {
	UpsertBorrower(ctx context.Context, profile BorrowerProfile, creditScore int, creditGrade string) (userId string, err error)
}

// Machine advances a chat session one user turn at a time. Every handler
// mutates the session and returns the assistant reply plus the next step;
// a returned error means the turn failed and the session must not be saved.
type Machine struct {
	extractor Extractor
	bureau    Bureau
	offers    OfferSource
	registrar Registrar
	log       logger.ILogger

	handlers map[Step]stepHandler
}

type stepHandler func(ctx context.Context, session *Session, message string) (string, Step, error)

func NewMachine(extractor Extractor, bureau Bureau, offers OfferSource, registrar Registrar, log logger.ILogger) *Machine {
	m := &Machine{
		extractor: extractor,
		bureau:    bureau,
		offers:    offers,
		registrar: registrar,
		log:       log,
	}
	m.handlers = map[Step]stepHandler{
		StepGreeting:         m.handleGreeting,
		StepAskName:          m.handleAskName,
		StepAskLoanPurpose:   m.handleAskLoanPurpose,
		StepShowLoanTypes:    m.handleShowLoanTypes,
		StepAskLoanAmount:    m.handleAskLoanAmount,
		StepEligibilityCheck: m.handleEligibilityCheck,
		StepShowLenders:      m.handleShowLenders,
		StepDocumentUpload:   m.handleDocumentUpload,
		StepKycCollection:    m.handleDocumentUpload,
		StepKycReady:         m.handleKycReady,
	}
	return m
}

// Advance records the user message, runs the current step's handler and
// records the reply. The caller persists the session only on success.
func (m *Machine) Advance(ctx context.Context, session *Session, message string) (string, error) {
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		session.Messages = append(session.Messages, Message{
			Role:      RoleUser,
			Content:   message,
			Timestamp: time.Now(),
		})
	}

	handler, ok := m.handlers[session.CurrentStep]
	if !ok {
		handler = m.handleFallback
	}

	response, nextStep, err := handler(ctx, session, message)
	if err != nil {
		return "", err
	}

	session.Messages = append(session.Messages, Message{
		Role:      RoleAssistant,
		Content:   response,
		Timestamp: time.Now(),
	})
	session.CurrentStep = nextStep
	session.UpdatedAt = time.Now()

	return response, nil
}

func (m *Machine) handleGreeting(ctx context.Context, session *Session, message string) (string, Step, error) {
	return "Hello! I'm here to help you find the perfect loan. What's your name?", StepAskName, nil
}

func (m *Machine) handleAskName(ctx context.Context, session *Session, message string) (string, Step, error) {
	result, err := m.extractor.ExtractField(ctx, message, extraction.FieldName)
	if err != nil {
		m.log.Error("chatflow", "name extraction failed", map[string]interface{}{
			"sessionId": session.SessionId,
			"error":     err.Error(),
		})
		return "", "", fmt.Errorf("extract name: %w", err)
	}

	name := strings.TrimSpace(message)
	if result.Value != "" {
		name = result.Value
	}
	session.Context.Name = name

	response := fmt.Sprintf("Nice to meet you, %s! What's the purpose of your loan?", name)
	return response, StepAskLoanPurpose, nil
}

func (m *Machine) handleAskLoanPurpose(ctx context.Context, session *Session, message string) (string, Step, error) {
	session.Context.LoanPurpose = message

	result, err := m.extractor.ExtractField(ctx, message, extraction.FieldLoanType)
	if err != nil {
		m.log.Error("chatflow", "loan type extraction failed", map[string]interface{}{
			"sessionId": session.SessionId,
			"error":     err.Error(),
		})
		return "", "", fmt.Errorf("extract loan type: %w", err)
	}

	if loanType, ok := entity.ParseLoanType(result.Value); ok {
		session.Context.SelectedLoanType = &loanType
		info, _ := matching.GetLoanTypeInfo(loanType)
		response := fmt.Sprintf(
			"Perfect! You're interested in a %s loan.\n\n%s\n\nBenefits:\n%s\n\nHow much loan amount are you looking for? (e.g., 5 lakh, 10 lakhs, ₹5,00,000)",
			loanType, info.Description, formatBenefits(info.Benefits),
		)
		return response, StepAskLoanAmount, nil
	}

	return "Great! Let me show you the available loan types. Please select one:", StepShowLoanTypes, nil
}

func (m *Machine) handleShowLoanTypes(ctx context.Context, session *Session, message string) (string, Step, error) {
	lower := strings.ToLower(message)
	for _, loanType := range entity.AllLoanTypes {
		if !strings.Contains(lower, strings.ToLower(string(loanType))) {
			continue
		}
		lt := loanType
		session.Context.SelectedLoanType = &lt
		info, _ := matching.GetLoanTypeInfo(lt)
		response := fmt.Sprintf(
			"%s\n\nBenefits:\n%s\n\nHow much loan amount are you looking for? (e.g., 5 lakh, 10 lakhs, ₹5,00,000)",
			info.Description, formatBenefits(info.Benefits),
		)
		return response, StepAskLoanAmount, nil
	}

	return "Please select a valid loan type: Personal, Business, Home, Vehicle, Education, or Gold.", StepShowLoanTypes, nil
}

func (m *Machine) handleAskLoanAmount(ctx context.Context, session *Session, message string) (string, Step, error) {
	var amount float64

	result, err := m.extractor.ExtractField(ctx, message, extraction.FieldLoanAmount)
	if err != nil {
		// Amount understanding degrades to the regex parser.
		m.log.Warn("chatflow", "amount extraction failed, falling back to regex", map[string]interface{}{
			"sessionId": session.SessionId,
			"error":     err.Error(),
		})
	} else if result.Value != "" {
		amount = CleanExtractedAmount(result.Value)
		if amount <= 0 {
			return "Please provide a valid loan amount. For example: 5 lakh, 10 lakhs, ₹5,00,000, or 500000.", StepAskLoanAmount, nil
		}
	}

	if amount <= 0 {
		amount = ParseAmount(message)
		if amount <= 0 {
			return "I couldn't understand the loan amount. Please specify the amount clearly, for example: '5 lakh', '10 lakhs', '₹5,00,000', or '500000'.", StepAskLoanAmount, nil
		}
	}

	session.Context.LoanAmount = amount
	response := fmt.Sprintf(
		"Got it! You're looking for a loan of ₹%s.\n\nTo check your eligibility, please provide your phone number or PAN card number.",
		FormatRupees(amount),
	)
	return response, StepEligibilityCheck, nil
}

func (m *Machine) handleEligibilityCheck(ctx context.Context, session *Session, message string) (string, Step, error) {
	phone, pan := ParseIdentity(message)

	// The model is a backstop for phrasings the regexes miss.
	if phone == "" && pan == "" {
		result, err := m.extractor.ExtractField(ctx, message, extraction.FieldPhoneOrPan)
		if err != nil {
			m.log.Warn("chatflow", "identity extraction failed, relying on regex only", map[string]interface{}{
				"sessionId": session.SessionId,
				"error":     err.Error(),
			})
		} else if result.Value != "" {
			phone, pan = ClassifyIdentity(result.Value)
		}
	}

	if phone == "" && pan == "" {
		return "Please provide a valid 10-digit phone number or PAN card number (e.g., ABCDE1234F). You can provide both if you have them.", StepEligibilityCheck, nil
	}

	report, err := m.bureau.Lookup(ctx, phone, pan)
	if err != nil {
		return "", "", fmt.Errorf("credit lookup: %w", err)
	}

	session.Context.Phone = phone
	session.Context.Pan = pan
	session.Context.CreditScore = &report.Score
	session.Context.CreditGrade = report.Grade
	session.Context.CreditHistory = report.History

	userId, err := m.registrar.UpsertBorrower(ctx, BorrowerProfile{
		Name:        session.Context.Name,
		Phone:       phone,
		Pan:         pan,
		LoanPurpose: session.Context.LoanPurpose,
		LoanType:    session.Context.SelectedLoanType,
	}, report.Score, report.Grade)
	if err != nil {
		// The KYC pipeline re-registers by phone/PAN, so a failed upsert
		// does not block the conversation.
		m.log.Warn("chatflow", "borrower upsert failed", map[string]interface{}{
			"sessionId": session.SessionId,
			"error":     err.Error(),
		})
	} else {
		session.UserId = userId
	}

	if session.Context.SelectedLoanType == nil {
		return "Please select a loan type first.", StepEligibilityCheck, nil
	}

	offers, err := m.offers.MatchingOffers(ctx, *session.Context.SelectedLoanType, DefaultMatchingScore)
	if err != nil {
		m.log.Warn("chatflow", "offer lookup failed, using builtin catalog", map[string]interface{}{
			"sessionId": session.SessionId,
			"error":     err.Error(),
		})
		offers = matching.MatchBuiltin(*session.Context.SelectedLoanType, DefaultMatchingScore)
	}

	if len(offers) == 0 {
		response := fmt.Sprintf(
			"✅ **Credit Score Retrieved**\n\nYour credit score: **%d** (Grade: **%s**)\n\nUnfortunately, we don't have lenders matching your profile at the moment.",
			report.Score, report.Grade,
		)
		return response, StepEligibilityCheck, nil
	}

	session.Context.MatchingLenders = offers
	response := fmt.Sprintf(
		"✅ **Credit Score Retrieved**\n\nYour credit score: **%d** (Grade: **%s**)\n\nHere are the best loan offers for you. Please select a lender from the cards below:",
		report.Score, report.Grade,
	)
	return response, StepShowLenders, nil
}

var lenderIndexPattern = regexp.MustCompile(`^(\d+)`)

func (m *Machine) handleShowLenders(ctx context.Context, session *Session, message string) (string, Step, error) {
	lenders := session.Context.MatchingLenders
	if len(lenders) == 0 {
		return "No lenders available. Please try again later.", StepShowLenders, nil
	}

	var selected *entity.LoanOffer
	if idx := lenderIndexPattern.FindStringSubmatch(strings.TrimSpace(message)); idx != nil {
		if n, err := strconv.Atoi(idx[1]); err == nil && n >= 1 && n <= len(lenders) {
			selected = &lenders[n-1]
		}
	}
	if selected == nil {
		lower := strings.ToLower(message)
		for i := range lenders {
			if strings.Contains(lower, strings.ToLower(lenders[i].LenderName)) {
				selected = &lenders[i]
				break
			}
		}
	}

	if selected == nil {
		return "Please select a valid lender from the cards above by clicking on it or typing the lender number/name.", StepShowLenders, nil
	}

	session.Context.SelectedLender = selected.LenderId
	session.Context.SelectedLenderName = selected.LenderName
	offer := *selected
	session.Context.SelectedOffer = &offer

	session.Context.RequiredDocuments = requiredDocumentList()
	session.Context.CurrentDocumentIndex = 0
	if session.Context.UploadedDocuments == nil {
		session.Context.UploadedDocuments = []UploadedDocument{}
	}

	firstDoc := entity.RequiredDocumentTypes[0]
	response := fmt.Sprintf(
		"✅ **Lender Selected!**\n\nGreat choice! You've selected **%s**.\n\nNow let's collect your KYC documents to complete your loan application.\n\nPlease upload your **%s** first.",
		selected.LenderName, entity.DocumentDisplayNames[firstDoc],
	)
	return response, StepDocumentUpload, nil
}

func (m *Machine) handleDocumentUpload(ctx context.Context, session *Session, message string) (string, Step, error) {
	if session.Context.RequiredDocuments == nil {
		session.Context.RequiredDocuments = requiredDocumentList()
	}
	if session.Context.UploadedDocuments == nil {
		session.Context.UploadedDocuments = []UploadedDocument{}
	}

	required := session.Context.RequiredDocuments
	uploadedTypes := map[string]bool{}
	for _, doc := range session.Context.UploadedDocuments {
		uploadedTypes[doc.Type] = true
	}

	lower := strings.ToLower(message)
	progressing := strings.Contains(lower, "next document") ||
		strings.Contains(lower, "all documents uploaded") ||
		strings.Contains(lower, "uploaded")

	if !progressing {
		response := fmt.Sprintf(
			"Please use the upload button above to upload your document. Progress: %d/%d documents uploaded.",
			len(session.Context.UploadedDocuments), len(required),
		)
		return response, session.CurrentStep, nil
	}

	allUploaded := len(required) == len(entity.RequiredDocumentTypes)
	for _, doc := range required {
		if !uploadedTypes[doc] {
			allUploaded = false
			break
		}
	}

	if allUploaded {
		response := fmt.Sprintf(
			"🎉 Excellent! All %d documents have been uploaded and processed.\n\nClick the 'Process KYC & Generate Report' button below to complete your application.",
			len(required),
		)
		return response, StepKycReady, nil
	}

	nextIndex := 0
	for nextIndex < len(required) && uploadedTypes[required[nextIndex]] {
		nextIndex++
	}

	if nextIndex >= len(required) {
		response := fmt.Sprintf(
			"You've uploaded %d documents. Please continue uploading the remaining documents.",
			len(uploadedTypes),
		)
		return response, session.CurrentStep, nil
	}

	session.Context.CurrentDocumentIndex = nextIndex
	docType := entity.DocumentType(required[nextIndex])
	response := fmt.Sprintf(
		"Great! Now please upload your **%s** (%d/%d).",
		entity.DocumentDisplayNames[docType], nextIndex+1, len(required),
	)
	return response, session.CurrentStep, nil
}

func (m *Machine) handleKycReady(ctx context.Context, session *Session, message string) (string, Step, error) {
	return "All documents are ready! Click the 'Process KYC & Generate Report' button to complete your application.", StepKycReady, nil
}

func (m *Machine) handleFallback(ctx context.Context, session *Session, message string) (string, Step, error) {
	return "I'm here to help! How can I assist you?", session.CurrentStep, nil
}

func formatBenefits(benefits []string) string {
	lines := make([]string, len(benefits))
	for i, b := range benefits {
		lines[i] = "• " + b
	}
	return strings.Join(lines, "\n")
}

func requiredDocumentList() []string {
	docs := make([]string, len(entity.RequiredDocumentTypes))
	for i, dt := range entity.RequiredDocumentTypes {
		docs[i] = string(dt)
	}
	return docs
}
