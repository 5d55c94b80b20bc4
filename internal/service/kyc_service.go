package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/repository/session"
	"loan-marketplace-be/internal/repository/specification"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/pkg/chatflow"
	"loan-marketplace-be/pkg/scoring"
)

type IKycService interface {
	// Process scores the borrower's documents, freezes a loan report and
	// files an application with the selected lender.
	Process(ctx context.Context, req *dto.ProcessKycRequest) (*dto.ProcessKycResponse, error)
}

type kycService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionStore session.IStore
	publisher    IPublisherService
	log          logger.ILogger
}

func NewKycService(
	uowFactory unitofwork.RepositoryFactory,
	sessionStore session.IStore,
	publisher IPublisherService,
	log logger.ILogger,
) IKycService {
	return &kycService{
		uowFactory:   uowFactory,
		sessionStore: sessionStore,
		publisher:    publisher,
		log:          log,
	}
}

func (s *kycService) Process(ctx context.Context, req *dto.ProcessKycRequest) (*dto.ProcessKycResponse, error) {
	sess, err := s.sessionStore.Get(ctx, req.SessionId)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, err
	}
	if sess.UserId == "" {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	userId, err := uuid.Parse(sess.UserId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid userId")
	}
	lenderId, err := uuid.Parse(sess.Context.SelectedLender)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid lenderId")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback()
		}
	}()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	docs, err := uow.KycDocumentRepository().FindAll(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "uploaded_at"},
	)
	if err != nil {
		return nil, err
	}

	// Keep the newest record per type; re-uploads supersede earlier scans.
	latest := map[entity.DocumentType]*entity.KycDocument{}
	for _, doc := range docs {
		latest[doc.Type] = doc
	}

	extracted := make([]entity.ExtractedData, 0, len(docs))
	documentTypes := make([]string, 0, len(docs))
	for _, doc := range docs {
		extracted = append(extracted, doc.ExtractedData)
		documentTypes = append(documentTypes, string(doc.Type))
	}

	creditScore := 600
	if user.CreditScore != nil {
		creditScore = *user.CreditScore
	}
	creditGrade := "C"
	if user.CreditGrade != nil {
		creditGrade = *user.CreditGrade
	}

	userScore := scoring.Calculate(userId.String(), extracted, creditScore, documentTypes)

	user.UserScore = &userScore.TotalScore
	user.KycStatus = entity.KycStatusCompleted
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	report := s.buildReport(userId, lenderId, user, latest, docs, creditScore, creditGrade, userScore.TotalScore)
	if err := uow.LoanReportRepository().Create(ctx, report); err != nil {
		return nil, err
	}

	app := &entity.Application{
		Id:          uuid.New(),
		ReportId:    report.Id,
		UserId:      userId,
		LenderId:    lenderId,
		Status:      entity.ApplicationStatusPending,
		UserScore:   userScore.TotalScore,
		CreditScore: creditScore,
		CreditGrade: creditGrade,
		LoanType:    user.SelectedLoanType,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uow.ApplicationRepository().Create(ctx, app); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	committed = true

	sess.CurrentStep = chatflow.StepReportGenerated
	sess.UpdatedAt = time.Now()
	if err := s.sessionStore.Save(ctx, sess); err != nil {
		s.log.Warn("KycService", "session step update failed", map[string]interface{}{
			"sessionId": req.SessionId,
			"error":     err.Error(),
		})
	}

	loanType := ""
	if user.SelectedLoanType != nil {
		loanType = string(*user.SelectedLoanType)
	}
	if err := s.publisher.PublishApplicationSubmitted(ctx, &dto.ApplicationSubmittedMessage{
		ApplicationId: app.Id,
		UserId:        userId,
		LenderId:      lenderId,
		ApplicantName: user.Name,
		LoanType:      loanType,
		UserScore:     userScore.TotalScore,
	}); err != nil {
		s.log.Warn("KycService", "application event publish failed", map[string]interface{}{
			"applicationId": app.Id.String(),
			"error":         err.Error(),
		})
	}

	lenderName := sess.Context.SelectedLenderName
	if lenderName == "" {
		lenderName = "Selected Lender"
	}

	return &dto.ProcessKycResponse{
		Success:    true,
		Report:     report,
		UserScore:  userScore,
		LenderId:   sess.Context.SelectedLender,
		LenderName: lenderName,
		Message:    fmt.Sprintf("KYC processing completed! Your loan application has been sent to %s.", lenderName),
	}, nil
}

func (s *kycService) buildReport(
	userId, lenderId uuid.UUID,
	user *entity.User,
	latest map[entity.DocumentType]*entity.KycDocument,
	docs []*entity.KycDocument,
	creditScore int,
	creditGrade string,
	totalScore int,
) *entity.LoanReport {
	var aadhar, pan, bank, income entity.ExtractedData
	if d := latest[entity.DocumentTypeAadhar]; d != nil {
		aadhar = d.ExtractedData
	}
	if d := latest[entity.DocumentTypePan]; d != nil {
		pan = d.ExtractedData
	}
	if d := latest[entity.DocumentTypeBankStatement]; d != nil {
		bank = d.ExtractedData
	}
	if d := latest[entity.DocumentTypeIncomeProof]; d != nil {
		income = d.ExtractedData
	}

	name := aadhar.Name
	if name == "" {
		name = user.Name
	}
	panNumber := pan.PanNumber
	if panNumber == "" && user.Pan != nil {
		panNumber = *user.Pan
	}

	submitted := make([]string, 0, len(docs))
	for _, doc := range docs {
		submitted = append(submitted, string(doc.Type))
	}

	var monthlyIncome, monthlyExpenses, emi float64
	if income.IncomeSummary != nil {
		monthlyIncome = income.IncomeSummary.MonthlyIncome
	}
	if bank.ExpenseSummary != nil {
		monthlyExpenses = bank.ExpenseSummary.MonthlyExpenses
	}
	if bank.EmiObligations != nil {
		emi = bank.EmiObligations.TotalEMI
	}

	return &entity.LoanReport{
		Id:       uuid.New(),
		UserId:   userId,
		LenderId: lenderId,
		UserIdentity: entity.UserIdentity{
			Name:         name,
			DateOfBirth:  aadhar.DateOfBirth,
			Address:      aadhar.Address,
			AadharNumber: aadhar.AadharNumber,
			PanNumber:    panNumber,
		},
		KycResults: entity.KycResults{
			Status:             "verified",
			DocumentsSubmitted: submitted,
			DocumentsVerified:  submitted,
		},
		CreditScore: creditScore,
		CreditGrade: creditGrade,
		FinancialStability: entity.FinancialStability{
			MonthlyIncome:    monthlyIncome,
			MonthlyExpenses:  monthlyExpenses,
			Savings:          bank.Savings,
			EmiObligations:   emi,
			DisposableIncome: monthlyIncome - monthlyExpenses - emi,
		},
		LoanEligibility: scoring.Eligibility(totalScore),
		UserScore:       totalScore,
		CreatedAt:       time.Now(),
	}
}
