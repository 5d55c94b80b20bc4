package chatflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/pkg/credit"
	"loan-marketplace-be/pkg/extraction"
)

type stubExtractor struct {
	values map[extraction.FieldKind]string
	errs   map[extraction.FieldKind]error
}

func (s *stubExtractor) ExtractField(ctx context.Context, text string, kind extraction.FieldKind) (*extraction.FieldResult, error) {
	if err, ok := s.errs[kind]; ok {
		return nil, err
	}
	return &extraction.FieldResult{Value: s.values[kind], Confidence: 0.9}, nil
}

type stubBureau struct {
	report *credit.Report
	err    error
}

func (s *stubBureau) Lookup(ctx context.Context, phone, pan string) (*credit.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type stubOffers struct {
	offers []entity.LoanOffer
	err    error
}

func (s *stubOffers) MatchingOffers(ctx context.Context, loanType entity.LoanType, userScore int) ([]entity.LoanOffer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.offers, nil
}

type stubRegistrar struct {
	userId  string
	err     error
	profile BorrowerProfile
}

func (s *stubRegistrar) UpsertBorrower(ctx context.Context, profile BorrowerProfile, creditScore int, creditGrade string) (string, error) {
	s.profile = profile
	if s.err != nil {
		return "", s.err
	}
	return s.userId, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func testReport() *credit.Report {
	return &credit.Report{Score: 720, Grade: "A", History: &credit.History{}}
}

func personalOffer(name string) entity.LoanOffer {
	return entity.LoanOffer{
		LenderId:         "lender-" + name,
		LenderName:       name,
		LoanType:         entity.LoanTypePersonal,
		InterestRate:     10.5,
		TenureOptions:    []int{12, 24, 36},
		MaxAmount:        2000000,
		EligibilityScore: 60,
	}
}

func newTestMachine(ext *stubExtractor, bureau *stubBureau, offers *stubOffers, reg *stubRegistrar) *Machine {
	if ext == nil {
		ext = &stubExtractor{}
	}
	if bureau == nil {
		bureau = &stubBureau{report: testReport()}
	}
	if offers == nil {
		offers = &stubOffers{offers: []entity.LoanOffer{personalOffer("HDFC Bank")}}
	}
	if reg == nil {
		reg = &stubRegistrar{userId: "11111111-1111-1111-1111-111111111111"}
	}
	return NewMachine(ext, bureau, offers, reg, nopLogger{})
}

func TestGreetingAsksForName(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := NewSession("s1")

	resp, err := m.Advance(context.Background(), sess, "hi")
	require.NoError(t, err)
	assert.Contains(t, resp, "What's your name?")
	assert.Equal(t, StepAskName, sess.CurrentStep)

	// One user message, one assistant reply.
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, RoleUser, sess.Messages[0].Role)
	assert.Equal(t, RoleAssistant, sess.Messages[1].Role)
}

func TestAskNameUsesExtractedValue(t *testing.T) {
	ext := &stubExtractor{values: map[extraction.FieldKind]string{extraction.FieldName: "Rahul Sharma"}}
	m := newTestMachine(ext, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskName

	resp, err := m.Advance(context.Background(), sess, "my name is rahul sharma")
	require.NoError(t, err)
	assert.Equal(t, "Rahul Sharma", sess.Context.Name)
	assert.Contains(t, resp, "Nice to meet you, Rahul Sharma!")
	assert.Equal(t, StepAskLoanPurpose, sess.CurrentStep)
}

func TestAskNameFallsBackToRawMessage(t *testing.T) {
	m := newTestMachine(&stubExtractor{}, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskName

	_, err := m.Advance(context.Background(), sess, "  Priya  ")
	require.NoError(t, err)
	assert.Equal(t, "Priya", sess.Context.Name)
}

func TestAskNameExtractionErrorAbortsTurn(t *testing.T) {
	ext := &stubExtractor{errs: map[extraction.FieldKind]error{extraction.FieldName: errors.New("provider down")}}
	m := newTestMachine(ext, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskName

	resp, err := m.Advance(context.Background(), sess, "Rahul")
	require.Error(t, err)
	assert.Empty(t, resp)
	// The step is untouched so a retry re-runs the same handler.
	assert.Equal(t, StepAskName, sess.CurrentStep)
	// No assistant reply was recorded.
	for _, msg := range sess.Messages {
		assert.NotEqual(t, RoleAssistant, msg.Role)
	}
}

func TestLoanPurposeWithRecognizedType(t *testing.T) {
	ext := &stubExtractor{values: map[extraction.FieldKind]string{extraction.FieldLoanType: "Home"}}
	m := newTestMachine(ext, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskLoanPurpose

	resp, err := m.Advance(context.Background(), sess, "I want to buy a house")
	require.NoError(t, err)
	require.NotNil(t, sess.Context.SelectedLoanType)
	assert.Equal(t, entity.LoanTypeHome, *sess.Context.SelectedLoanType)
	assert.Equal(t, "I want to buy a house", sess.Context.LoanPurpose)
	assert.Contains(t, resp, "Home loan")
	assert.Contains(t, resp, "Benefits:")
	assert.Equal(t, StepAskLoanAmount, sess.CurrentStep)
}

func TestLoanPurposeUnrecognizedShowsTypes(t *testing.T) {
	m := newTestMachine(&stubExtractor{}, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskLoanPurpose

	resp, err := m.Advance(context.Background(), sess, "I just need money")
	require.NoError(t, err)
	assert.Nil(t, sess.Context.SelectedLoanType)
	assert.Contains(t, resp, "available loan types")
	assert.Equal(t, StepShowLoanTypes, sess.CurrentStep)
}

func TestShowLoanTypesMatchesSubstring(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepShowLoanTypes

	_, err := m.Advance(context.Background(), sess, "the vehicle one please")
	require.NoError(t, err)
	require.NotNil(t, sess.Context.SelectedLoanType)
	assert.Equal(t, entity.LoanTypeVehicle, *sess.Context.SelectedLoanType)
	assert.Equal(t, StepAskLoanAmount, sess.CurrentStep)
}

func TestShowLoanTypesRepromptsOnUnknown(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepShowLoanTypes

	resp, err := m.Advance(context.Background(), sess, "something else")
	require.NoError(t, err)
	assert.Contains(t, resp, "valid loan type")
	assert.Equal(t, StepShowLoanTypes, sess.CurrentStep)
}

func TestLoanAmountParsedFromMessage(t *testing.T) {
	m := newTestMachine(&stubExtractor{}, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskLoanAmount

	resp, err := m.Advance(context.Background(), sess, "5 lakh")
	require.NoError(t, err)
	assert.Equal(t, 500000.0, sess.Context.LoanAmount)
	assert.Contains(t, resp, "₹5,00,000")
	assert.Equal(t, StepEligibilityCheck, sess.CurrentStep)
}

func TestLoanAmountPrefersExtractedValue(t *testing.T) {
	ext := &stubExtractor{values: map[extraction.FieldKind]string{extraction.FieldLoanAmount: "₹7,50,000"}}
	m := newTestMachine(ext, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskLoanAmount

	_, err := m.Advance(context.Background(), sess, "around seven and a half")
	require.NoError(t, err)
	assert.Equal(t, 750000.0, sess.Context.LoanAmount)
	assert.Equal(t, StepEligibilityCheck, sess.CurrentStep)
}

func TestLoanAmountExtractorErrorFallsBackToRegex(t *testing.T) {
	ext := &stubExtractor{errs: map[extraction.FieldKind]error{extraction.FieldLoanAmount: errors.New("timeout")}}
	m := newTestMachine(ext, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskLoanAmount

	_, err := m.Advance(context.Background(), sess, "2 crore")
	require.NoError(t, err)
	assert.Equal(t, 20000000.0, sess.Context.LoanAmount)
	assert.Equal(t, StepEligibilityCheck, sess.CurrentStep)
}

func TestLoanAmountRepromptsWhenUnreadable(t *testing.T) {
	m := newTestMachine(&stubExtractor{}, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepAskLoanAmount

	resp, err := m.Advance(context.Background(), sess, "a reasonable sum")
	require.NoError(t, err)
	assert.Contains(t, resp, "couldn't understand the loan amount")
	assert.Equal(t, StepAskLoanAmount, sess.CurrentStep)
	assert.Zero(t, sess.Context.LoanAmount)

	// A second identical attempt re-prompts with no context drift.
	afterFirst := sess.Context
	resp, err = m.Advance(context.Background(), sess, "a reasonable sum")
	require.NoError(t, err)
	assert.Contains(t, resp, "couldn't understand the loan amount")
	assert.Equal(t, StepAskLoanAmount, sess.CurrentStep)
	assert.Equal(t, afterFirst, sess.Context)
}

func eligibilitySession() *Session {
	sess := NewSession("s1")
	sess.CurrentStep = StepEligibilityCheck
	lt := entity.LoanTypePersonal
	sess.Context.SelectedLoanType = &lt
	sess.Context.Name = "Rahul"
	return sess
}

func TestEligibilityWithPhone(t *testing.T) {
	reg := &stubRegistrar{userId: "22222222-2222-2222-2222-222222222222"}
	m := newTestMachine(&stubExtractor{}, nil, nil, reg)
	sess := eligibilitySession()

	resp, err := m.Advance(context.Background(), sess, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", sess.Context.Phone)
	require.NotNil(t, sess.Context.CreditScore)
	assert.Equal(t, 720, *sess.Context.CreditScore)
	assert.Equal(t, "A", sess.Context.CreditGrade)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", sess.UserId)
	assert.Equal(t, "9876543210", reg.profile.Phone)
	assert.Contains(t, resp, "**720**")
	assert.Equal(t, StepShowLenders, sess.CurrentStep)
	assert.NotEmpty(t, sess.Context.MatchingLenders)
}

func TestEligibilityUppercasesPan(t *testing.T) {
	m := newTestMachine(&stubExtractor{}, nil, nil, nil)
	sess := eligibilitySession()

	_, err := m.Advance(context.Background(), sess, "my pan is abcde1234f")
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", sess.Context.Pan)
}

func TestEligibilityRepromptsWithoutIdentity(t *testing.T) {
	m := newTestMachine(&stubExtractor{}, nil, nil, nil)
	sess := eligibilitySession()

	resp, err := m.Advance(context.Background(), sess, "I don't have those handy")
	require.NoError(t, err)
	assert.Contains(t, resp, "10-digit phone number or PAN")
	assert.Equal(t, StepEligibilityCheck, sess.CurrentStep)
}

func TestEligibilityBureauErrorAbortsTurn(t *testing.T) {
	bureau := &stubBureau{err: errors.New("bureau unavailable")}
	m := newTestMachine(&stubExtractor{}, bureau, nil, nil)
	sess := eligibilitySession()

	_, err := m.Advance(context.Background(), sess, "9876543210")
	require.Error(t, err)
	assert.Equal(t, StepEligibilityCheck, sess.CurrentStep)
}

func TestEligibilityRegistrarFailureDoesNotBlock(t *testing.T) {
	reg := &stubRegistrar{err: errors.New("db down")}
	m := newTestMachine(&stubExtractor{}, nil, nil, reg)
	sess := eligibilitySession()

	_, err := m.Advance(context.Background(), sess, "9876543210")
	require.NoError(t, err)
	assert.Empty(t, sess.UserId)
	assert.Equal(t, StepShowLenders, sess.CurrentStep)
}

func TestEligibilityOfferErrorFallsBackToBuiltinCatalog(t *testing.T) {
	offers := &stubOffers{err: errors.New("query failed")}
	m := newTestMachine(&stubExtractor{}, nil, offers, nil)
	sess := eligibilitySession()

	_, err := m.Advance(context.Background(), sess, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, StepShowLenders, sess.CurrentStep)
	// The builtin Personal catalog qualifies three lenders at the default
	// matching score, cheapest rate first.
	require.Len(t, sess.Context.MatchingLenders, 3)
	assert.Equal(t, "HDFC Bank", sess.Context.MatchingLenders[0].LenderName)
}

func TestEligibilityNoOffersStaysPut(t *testing.T) {
	offers := &stubOffers{offers: []entity.LoanOffer{}}
	m := newTestMachine(&stubExtractor{}, nil, offers, nil)
	sess := eligibilitySession()

	resp, err := m.Advance(context.Background(), sess, "9876543210")
	require.NoError(t, err)
	assert.Contains(t, resp, "don't have lenders matching your profile")
	assert.Equal(t, StepEligibilityCheck, sess.CurrentStep)
}

func lenderSelectionSession() *Session {
	sess := NewSession("s1")
	sess.CurrentStep = StepShowLenders
	sess.Context.MatchingLenders = []entity.LoanOffer{
		personalOffer("HDFC Bank"),
		personalOffer("ICICI Bank"),
	}
	return sess
}

func TestSelectLenderByIndex(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := lenderSelectionSession()

	resp, err := m.Advance(context.Background(), sess, "2")
	require.NoError(t, err)
	assert.Equal(t, "lender-ICICI Bank", sess.Context.SelectedLender)
	assert.Equal(t, "ICICI Bank", sess.Context.SelectedLenderName)
	require.NotNil(t, sess.Context.SelectedOffer)
	assert.Len(t, sess.Context.RequiredDocuments, 8)
	assert.Contains(t, resp, "Aadhar Card")
	assert.Equal(t, StepDocumentUpload, sess.CurrentStep)
}

func TestSelectLenderByName(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := lenderSelectionSession()

	_, err := m.Advance(context.Background(), sess, "I'll go with hdfc bank")
	require.NoError(t, err)
	assert.Equal(t, "HDFC Bank", sess.Context.SelectedLenderName)
	assert.Equal(t, StepDocumentUpload, sess.CurrentStep)
}

func TestSelectLenderInvalidReprompts(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := lenderSelectionSession()

	resp, err := m.Advance(context.Background(), sess, "axis please")
	require.NoError(t, err)
	assert.Contains(t, resp, "valid lender")
	assert.Equal(t, StepShowLenders, sess.CurrentStep)
}

func uploadSession(uploadedCount int) *Session {
	sess := NewSession("s1")
	sess.CurrentStep = StepDocumentUpload
	sess.Context.RequiredDocuments = requiredDocumentList()
	sess.Context.UploadedDocuments = []UploadedDocument{}
	for i := 0; i < uploadedCount; i++ {
		sess.Context.UploadedDocuments = append(sess.Context.UploadedDocuments, UploadedDocument{
			Type: string(entity.RequiredDocumentTypes[i]),
		})
	}
	return sess
}

func TestDocumentUploadShowsProgressOnChatter(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := uploadSession(3)

	resp, err := m.Advance(context.Background(), sess, "how long will this take?")
	require.NoError(t, err)
	assert.Contains(t, resp, "Progress: 3/8 documents uploaded")
	assert.Equal(t, StepDocumentUpload, sess.CurrentStep)
}

func TestDocumentUploadPromptsNextDocument(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := uploadSession(2)

	resp, err := m.Advance(context.Background(), sess, "uploaded, next document please")
	require.NoError(t, err)
	assert.Contains(t, resp, "Bank Statement")
	assert.Contains(t, resp, "(3/8)")
	assert.Equal(t, 2, sess.Context.CurrentDocumentIndex)
	assert.Equal(t, StepDocumentUpload, sess.CurrentStep)
}

func TestDocumentUploadCompletionIsOrderIndependent(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := uploadSession(0)
	// Upload everything in reverse order.
	for i := len(entity.RequiredDocumentTypes) - 1; i >= 0; i-- {
		sess.Context.UploadedDocuments = append(sess.Context.UploadedDocuments, UploadedDocument{
			Type: string(entity.RequiredDocumentTypes[i]),
		})
	}

	resp, err := m.Advance(context.Background(), sess, "all documents uploaded")
	require.NoError(t, err)
	assert.Contains(t, resp, "All 8 documents have been uploaded")
	assert.Equal(t, StepKycReady, sess.CurrentStep)
}

func TestKycReadyIsIdempotent(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = StepKycReady

	for i := 0; i < 2; i++ {
		resp, err := m.Advance(context.Background(), sess, fmt.Sprintf("ping %d", i))
		require.NoError(t, err)
		assert.Contains(t, resp, "Process KYC & Generate Report")
		assert.Equal(t, StepKycReady, sess.CurrentStep)
	}
}

func TestUnknownStepFallsBack(t *testing.T) {
	m := newTestMachine(nil, nil, nil, nil)
	sess := NewSession("s1")
	sess.CurrentStep = Step("time_travel")

	resp, err := m.Advance(context.Background(), sess, "hello?")
	require.NoError(t, err)
	assert.Equal(t, "I'm here to help! How can I assist you?", resp)
	assert.Equal(t, Step("time_travel"), sess.CurrentStep)
}

func TestFullHappyPathWalk(t *testing.T) {
	ext := &stubExtractor{values: map[extraction.FieldKind]string{
		extraction.FieldName:     "Anita Desai",
		extraction.FieldLoanType: "Personal",
	}}
	m := newTestMachine(ext, nil, nil, nil)
	sess := NewSession("walk")

	steps := []struct {
		message string
		next    Step
	}{
		{"hi", StepAskName},
		{"Anita Desai", StepAskLoanPurpose},
		{"need funds for a wedding", StepAskLoanAmount},
		{"5 lakh", StepEligibilityCheck},
		{"9876543210", StepShowLenders},
		{"1", StepDocumentUpload},
	}

	for _, step := range steps {
		_, err := m.Advance(context.Background(), sess, step.message)
		require.NoError(t, err)
		require.Equal(t, step.next, sess.CurrentStep, "after message %q", step.message)
	}

	assert.Equal(t, "Anita Desai", sess.Context.Name)
	assert.Equal(t, 500000.0, sess.Context.LoanAmount)
	assert.NotEmpty(t, sess.Context.SelectedLender)
}
