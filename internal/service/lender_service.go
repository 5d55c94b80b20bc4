package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/pkg/mailer"
	"loan-marketplace-be/internal/repository/specification"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/pkg/events"
	pkgNats "loan-marketplace-be/pkg/nats"
)

const lenderTokenTTL = 7 * 24 * time.Hour

type ILenderService interface {
	Register(ctx context.Context, req *dto.RegisterLenderRequest) (*dto.RegisterLenderResponse, error)
	Login(ctx context.Context, req *dto.LoginLenderRequest) (*dto.LoginLenderResponse, error)
	Applications(ctx context.Context, lenderId uuid.UUID) ([]dto.LenderApplicationResponse, error)
	Reports(ctx context.Context, lenderId uuid.UUID) ([]dto.LenderReportResponse, error)
	Decide(ctx context.Context, lenderId uuid.UUID, req *dto.DecideApplicationRequest) (*dto.DecideApplicationResponse, error)
}

type lenderService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewLenderService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ILenderService {
	return &lenderService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *lenderService) Register(ctx context.Context, req *dto.RegisterLenderRequest) (*dto.RegisterLenderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LenderRepository()

	existing, err := repo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lender with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	loanTypes := make([]entity.LoanType, 0, len(req.LoanTypes))
	for _, raw := range req.LoanTypes {
		if lt, ok := entity.ParseLoanType(raw); ok {
			loanTypes = append(loanTypes, lt)
		}
	}

	lender := &entity.Lender{
		Id:                 uuid.New(),
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		LoanTypes:          loanTypes,
		IsActive:           true,
		CreatedAt:          time.Now(),
	}
	if err := repo.Create(ctx, lender); err != nil {
		return nil, err
	}

	return &dto.RegisterLenderResponse{
		Success:  true,
		Message:  "Lender registered successfully",
		LenderId: lender.Id,
	}, nil
}

func (s *lenderService) Login(ctx context.Context, req *dto.LoginLenderRequest) (*dto.LoginLenderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lender, err := uow.LenderRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if lender == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(lender.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"lender_id": lender.Id.String(),
		"email":     lender.Email,
		"exp":       time.Now().Add(lenderTokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.LoginLenderResponse{
		Success: true,
		Token:   signed,
		Lender: dto.LenderProfile{
			Id:          lender.Id,
			Name:        lender.Name,
			Email:       lender.Email,
			CompanyName: lender.CompanyName,
		},
	}, nil
}

func (s *lenderService) Applications(ctx context.Context, lenderId uuid.UUID) ([]dto.LenderApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	apps, err := uow.ApplicationRepository().FindAll(ctx,
		specification.ByLenderId{LenderId: lenderId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LenderApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp := dto.LenderApplicationResponse{
			Id:            app.Id,
			ReportId:      app.ReportId,
			UserId:        app.UserId,
			Status:        string(app.Status),
			UserScore:     app.UserScore,
			CreditScore:   app.CreditScore,
			CreditGrade:   app.CreditGrade,
			LoanType:      app.LoanType,
			LenderMessage: app.LenderMessage,
			CreatedAt:     app.CreatedAt,
			UpdatedAt:     app.UpdatedAt,
		}

		if report, err := uow.LoanReportRepository().FindOne(ctx, specification.ByID{ID: app.ReportId}); err == nil {
			resp.Report = report
		}
		if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: app.UserId}); err == nil && user != nil {
			resp.User = &dto.ApplicantSummary{
				Name:  user.Name,
				Email: user.Email,
				Phone: user.Phone,
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *lenderService) Reports(ctx context.Context, lenderId uuid.UUID) ([]dto.LenderReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	apps, err := uow.ApplicationRepository().FindAll(ctx,
		specification.ByLenderId{LenderId: lenderId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LenderReportResponse, 0, len(apps))
	for _, app := range apps {
		report, err := uow.LoanReportRepository().FindOne(ctx, specification.ByID{ID: app.ReportId})
		if err != nil {
			s.log.Warn("LenderService", "report lookup failed", map[string]interface{}{
				"reportId": app.ReportId.String(),
				"error":    err.Error(),
			})
			continue
		}
		responses = append(responses, dto.LenderReportResponse{
			ApplicationId: app.Id,
			Status:        string(app.Status),
			Report:        report,
		})
	}

	return responses, nil
}

func (s *lenderService) Decide(ctx context.Context, lenderId uuid.UUID, req *dto.DecideApplicationRequest) (*dto.DecideApplicationResponse, error) {
	applicationId, err := uuid.Parse(req.ApplicationId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid applicationId")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ApplicationRepository()

	app, err := repo.FindOne(ctx,
		specification.ByID{ID: applicationId},
		specification.ByLenderId{LenderId: lenderId},
	)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Application not found")
	}

	status := entity.ApplicationStatusRejected
	verb := "rejected"
	if req.Action == "approve" {
		status = entity.ApplicationStatusApproved
		verb = "approved"
	}

	app.Status = status
	if req.Message != "" {
		msg := req.Message
		app.LenderMessage = &msg
	}
	app.UpdatedAt = time.Now()

	if err := repo.Update(ctx, app); err != nil {
		return nil, err
	}

	// Downstream consumers (analytics, audit) hear about decisions over
	// NATS; a bus outage must not fail the decision itself.
	if s.eventPublisher != nil {
		event := events.NewApplicationDecided(app.Id.String(), app.UserId.String(), lenderId.String(), string(status))
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("LenderService", "decision event publish failed", map[string]interface{}{
				"applicationId": app.Id.String(),
				"error":         err.Error(),
			})
		}
	}

	s.notifyBorrower(ctx, uow, app, string(status))

	return &dto.DecideApplicationResponse{
		Success: true,
		Message: fmt.Sprintf("Application %s successfully", verb),
	}, nil
}

func (s *lenderService) notifyBorrower(ctx context.Context, uow unitofwork.UnitOfWork, app *entity.Application, status string) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: app.UserId})
	if err != nil || user == nil || user.Email == nil {
		return
	}
	lender, err := uow.LenderRepository().FindOne(ctx, specification.ByID{ID: app.LenderId})
	if err != nil || lender == nil {
		return
	}
	lenderName := lender.CompanyName
	if lenderName == "" {
		lenderName = lender.Name
	}
	if err := s.emailService.SendDecisionNotice(*user.Email, lenderName, status); err != nil {
		s.log.Warn("LenderService", "decision notice email failed", map[string]interface{}{
			"userId": app.UserId.String(),
			"error":  err.Error(),
		})
	}
}
