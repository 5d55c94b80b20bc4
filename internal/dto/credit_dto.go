package dto

import "loan-marketplace-be/pkg/credit"

type CreditScoreRequest struct {
	Phone string `json:"phone" validate:"omitempty,len=10,numeric"`
	Pan   string `json:"pan" validate:"omitempty,len=10"`
}

type CreditScoreResponse struct {
	Success       bool            `json:"success"`
	CreditScore   int             `json:"creditScore"`
	CreditGrade   string          `json:"creditGrade"`
	CreditHistory *credit.History `json:"creditHistory"`
	ReportDate    string          `json:"reportDate"`
}
