package unitofwork

import (
	"context"

	"loan-marketplace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LenderRepository() contract.LenderRepository
	KycDocumentRepository() contract.KycDocumentRepository
	LoanReportRepository() contract.LoanReportRepository
	ApplicationRepository() contract.ApplicationRepository
	LenderMessageRepository() contract.LenderMessageRepository
}
