package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/repository/session"
	"loan-marketplace-be/internal/repository/specification"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/pkg/chatflow"
)

type IUserService interface {
	// UpsertBorrower creates or refreshes the borrower keyed by phone or
	// PAN and returns its id. Satisfies the chat flow's Registrar.
	UpsertBorrower(ctx context.Context, profile chatflow.BorrowerProfile, creditScore int, creditGrade string) (string, error)
	FindByPhone(ctx context.Context, phone string) (*dto.FindUserResponse, error)
	Applications(ctx context.Context, sessionId, userIdParam string) ([]dto.UserApplicationResponse, error)
}

type userService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionStore session.IStore
	log          logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, sessionStore session.IStore, log logger.ILogger) IUserService {
	return &userService{
		uowFactory:   uowFactory,
		sessionStore: sessionStore,
		log:          log,
	}
}

var _ chatflow.Registrar = (*userService)(nil)

func (s *userService) UpsertBorrower(ctx context.Context, profile chatflow.BorrowerProfile, creditScore int, creditGrade string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	existing, err := repo.FindOne(ctx, specification.ByPhoneOrPan{Phone: profile.Phone, Pan: profile.Pan})
	if err != nil {
		return "", err
	}

	var phone, pan *string
	if profile.Phone != "" {
		phone = &profile.Phone
	}
	if profile.Pan != "" {
		pan = &profile.Pan
	}
	var purpose *string
	if profile.LoanPurpose != "" {
		purpose = &profile.LoanPurpose
	}
	grade := creditGrade

	if existing == nil {
		user := &entity.User{
			Id:               uuid.New(),
			Name:             profile.Name,
			Phone:            phone,
			Pan:              pan,
			CreditScore:      &creditScore,
			CreditGrade:      &grade,
			LoanPurpose:      purpose,
			SelectedLoanType: profile.LoanType,
			KycStatus:        entity.KycStatusPending,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}
		if err := repo.Create(ctx, user); err != nil {
			return "", err
		}
		return user.Id.String(), nil
	}

	existing.Name = profile.Name
	if phone != nil {
		existing.Phone = phone
	}
	if pan != nil {
		existing.Pan = pan
	}
	existing.CreditScore = &creditScore
	existing.CreditGrade = &grade
	if purpose != nil {
		existing.LoanPurpose = purpose
	}
	if profile.LoanType != nil {
		existing.SelectedLoanType = profile.LoanType
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Update(ctx, existing); err != nil {
		return "", err
	}
	return existing.Id.String(), nil
}

func (s *userService) FindByPhone(ctx context.Context, phone string) (*dto.FindUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByPhoneOrPan{Phone: phone})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return &dto.FindUserResponse{
		Id:          user.Id,
		Name:        user.Name,
		Phone:       user.Phone,
		Email:       user.Email,
		CreditScore: user.CreditScore,
		CreditGrade: user.CreditGrade,
	}, nil
}

// resolveUserId finds the borrower an application query refers to: explicit
// userId first, then the session's userId, then the session's phone/PAN.
func (s *userService) resolveUserId(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, userIdParam string) (uuid.UUID, bool) {
	if userIdParam != "" {
		if id, err := uuid.Parse(userIdParam); err == nil {
			return id, true
		}
	}

	sess, err := s.sessionStore.Get(ctx, sessionId)
	if err != nil || sess == nil {
		return uuid.Nil, false
	}

	if sess.UserId != "" {
		if id, err := uuid.Parse(sess.UserId); err == nil {
			return id, true
		}
	}

	if sess.Context.Phone != "" || sess.Context.Pan != "" {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByPhoneOrPan{
			Phone: sess.Context.Phone,
			Pan:   sess.Context.Pan,
		})
		if err == nil && user != nil {
			return user.Id, true
		}
	}

	return uuid.Nil, false
}

func (s *userService) Applications(ctx context.Context, sessionId, userIdParam string) ([]dto.UserApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	userId, ok := s.resolveUserId(ctx, uow, sessionId, userIdParam)
	if !ok {
		// The borrower may simply have no applications yet.
		return []dto.UserApplicationResponse{}, nil
	}

	apps, err := uow.ApplicationRepository().FindAll(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp := dto.UserApplicationResponse{
			Id:            app.Id,
			UserId:        app.UserId,
			LenderId:      app.LenderId,
			LenderName:    "Unknown Lender",
			Status:        string(app.Status),
			UserScore:     app.UserScore,
			CreditScore:   app.CreditScore,
			CreditGrade:   app.CreditGrade,
			LoanType:      app.LoanType,
			LenderMessage: app.LenderMessage,
			CreatedAt:     app.CreatedAt,
			UpdatedAt:     app.UpdatedAt,
		}

		if lender, err := uow.LenderRepository().FindOne(ctx, specification.ByID{ID: app.LenderId}); err == nil && lender != nil {
			if lender.CompanyName != "" {
				resp.LenderName = lender.CompanyName
			} else {
				resp.LenderName = lender.Name
			}
		}

		if report, err := uow.LoanReportRepository().FindOne(ctx, specification.ByID{ID: app.ReportId}); err == nil && report != nil {
			resp.Report = &dto.ReportSummary{
				LoanEligibility:    report.LoanEligibility,
				FinancialStability: report.FinancialStability,
				UserScore:          report.UserScore,
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
