package mapper

import (
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/model"
)

type ApplicationMapper struct{}

func NewApplicationMapper() *ApplicationMapper {
	return &ApplicationMapper{}
}

func (m *ApplicationMapper) ToEntity(a *model.Application) *entity.Application {
	if a == nil {
		return nil
	}

	var loanType *entity.LoanType
	if a.LoanType != nil {
		if lt, ok := entity.ParseLoanType(*a.LoanType); ok {
			loanType = &lt
		}
	}

	return &entity.Application{
		Id:            a.Id,
		ReportId:      a.ReportId,
		UserId:        a.UserId,
		LenderId:      a.LenderId,
		Status:        entity.ApplicationStatus(a.Status),
		LenderMessage: a.LenderMessage,
		UserScore:     a.UserScore,
		CreditScore:   a.CreditScore,
		CreditGrade:   a.CreditGrade,
		LoanType:      loanType,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (m *ApplicationMapper) ToModel(a *entity.Application) *model.Application {
	if a == nil {
		return nil
	}

	var loanType *string
	if a.LoanType != nil {
		s := string(*a.LoanType)
		loanType = &s
	}

	return &model.Application{
		Id:            a.Id,
		ReportId:      a.ReportId,
		UserId:        a.UserId,
		LenderId:      a.LenderId,
		Status:        string(a.Status),
		LenderMessage: a.LenderMessage,
		UserScore:     a.UserScore,
		CreditScore:   a.CreditScore,
		CreditGrade:   a.CreditGrade,
		LoanType:      loanType,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (m *ApplicationMapper) ToEntities(apps []*model.Application) []*entity.Application {
	entities := make([]*entity.Application, len(apps))
	for i, a := range apps {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
