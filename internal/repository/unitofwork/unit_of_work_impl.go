package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loan-marketplace-be/internal/repository/contract"
	"loan-marketplace-be/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LenderRepository() contract.LenderRepository {
	return implementation.NewLenderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KycDocumentRepository() contract.KycDocumentRepository {
	return implementation.NewKycDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LoanReportRepository() contract.LoanReportRepository {
	return implementation.NewLoanReportRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ApplicationRepository() contract.ApplicationRepository {
	return implementation.NewApplicationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LenderMessageRepository() contract.LenderMessageRepository {
	return implementation.NewLenderMessageRepository(u.getDB())
}
