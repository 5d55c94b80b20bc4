package mapper

import (
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var loanType *entity.LoanType
	if u.SelectedLoanType != nil {
		if lt, ok := entity.ParseLoanType(*u.SelectedLoanType); ok {
			loanType = &lt
		}
	}

	kycStatus := entity.KycStatus(u.KycStatus)
	if u.KycStatus == "" {
		kycStatus = entity.KycStatusPending
	}

	return &entity.User{
		Id:               u.Id,
		Name:             u.Name,
		Phone:            u.Phone,
		Pan:              u.Pan,
		Email:            u.Email,
		CreditScore:      u.CreditScore,
		CreditGrade:      u.CreditGrade,
		LoanPurpose:      u.LoanPurpose,
		SelectedLoanType: loanType,
		UserScore:        u.UserScore,
		KycStatus:        kycStatus,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var loanType *string
	if u.SelectedLoanType != nil {
		s := string(*u.SelectedLoanType)
		loanType = &s
	}

	return &model.User{
		Id:               u.Id,
		Name:             u.Name,
		Phone:            u.Phone,
		Pan:              u.Pan,
		Email:            u.Email,
		CreditScore:      u.CreditScore,
		CreditGrade:      u.CreditGrade,
		LoanPurpose:      u.LoanPurpose,
		SelectedLoanType: loanType,
		UserScore:        u.UserScore,
		KycStatus:        string(u.KycStatus),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
