package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/model"
)

type LenderMapper struct{}

func NewLenderMapper() *LenderMapper {
	return &LenderMapper{}
}

func (m *LenderMapper) ToEntity(l *model.Lender) *entity.Lender {
	if l == nil {
		return nil
	}

	var loanTypes []entity.LoanType
	if len(l.LoanTypes) > 0 {
		_ = json.Unmarshal(l.LoanTypes, &loanTypes)
	}

	return &entity.Lender{
		Id:                 l.Id,
		Name:               l.Name,
		Email:              l.Email,
		PasswordHash:       l.PasswordHash,
		CompanyName:        l.CompanyName,
		RegistrationNumber: l.RegistrationNumber,
		LoanTypes:          loanTypes,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
	}
}

func (m *LenderMapper) ToModel(l *entity.Lender) *model.Lender {
	if l == nil {
		return nil
	}

	var loanTypes datatypes.JSON
	if l.LoanTypes != nil {
		raw, _ := json.Marshal(l.LoanTypes)
		loanTypes = raw
	}

	return &model.Lender{
		Id:                 l.Id,
		Name:               l.Name,
		Email:              l.Email,
		PasswordHash:       l.PasswordHash,
		CompanyName:        l.CompanyName,
		RegistrationNumber: l.RegistrationNumber,
		LoanTypes:          loanTypes,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
	}
}

func (m *LenderMapper) ToEntities(lenders []*model.Lender) []*entity.Lender {
	entities := make([]*entity.Lender, len(lenders))
	for i, l := range lenders {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
