package mapper

import (
	"encoding/json"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/model"
)

type LoanReportMapper struct{}

func NewLoanReportMapper() *LoanReportMapper {
	return &LoanReportMapper{}
}

func (m *LoanReportMapper) ToEntity(r *model.LoanReport) *entity.LoanReport {
	if r == nil {
		return nil
	}

	var identity entity.UserIdentity
	var kyc entity.KycResults
	var financial entity.FinancialStability
	var eligibility entity.LoanEligibility
	if len(r.UserIdentity) > 0 {
		_ = json.Unmarshal(r.UserIdentity, &identity)
	}
	if len(r.KycResults) > 0 {
		_ = json.Unmarshal(r.KycResults, &kyc)
	}
	if len(r.FinancialStability) > 0 {
		_ = json.Unmarshal(r.FinancialStability, &financial)
	}
	if len(r.LoanEligibility) > 0 {
		_ = json.Unmarshal(r.LoanEligibility, &eligibility)
	}

	return &entity.LoanReport{
		Id:                 r.Id,
		UserId:             r.UserId,
		LenderId:           r.LenderId,
		UserIdentity:       identity,
		KycResults:         kyc,
		CreditScore:        r.CreditScore,
		CreditGrade:        r.CreditGrade,
		FinancialStability: financial,
		LoanEligibility:    eligibility,
		UserScore:          r.UserScore,
		CreatedAt:          r.CreatedAt,
	}
}

func (m *LoanReportMapper) ToModel(r *entity.LoanReport) *model.LoanReport {
	if r == nil {
		return nil
	}

	identity, _ := json.Marshal(r.UserIdentity)
	kyc, _ := json.Marshal(r.KycResults)
	financial, _ := json.Marshal(r.FinancialStability)
	eligibility, _ := json.Marshal(r.LoanEligibility)

	return &model.LoanReport{
		Id:                 r.Id,
		UserId:             r.UserId,
		LenderId:           r.LenderId,
		UserIdentity:       identity,
		KycResults:         kyc,
		CreditScore:        r.CreditScore,
		CreditGrade:        r.CreditGrade,
		FinancialStability: financial,
		LoanEligibility:    eligibility,
		UserScore:          r.UserScore,
		CreatedAt:          r.CreatedAt,
	}
}

func (m *LoanReportMapper) ToEntities(reports []*model.LoanReport) []*entity.LoanReport {
	entities := make([]*entity.LoanReport, len(reports))
	for i, r := range reports {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
