package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/mapper"
	"loan-marketplace-be/internal/model"
	"loan-marketplace-be/internal/repository/contract"
	"loan-marketplace-be/internal/repository/specification"
)

type LoanReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LoanReportMapper
}

func NewLoanReportRepository(db *gorm.DB) contract.LoanReportRepository {
	return &LoanReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewLoanReportMapper(),
	}
}

func (r *LoanReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LoanReportRepositoryImpl) Create(ctx context.Context, report *entity.LoanReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *LoanReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoanReport, error) {
	var m model.LoanReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LoanReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoanReport, error) {
	var models []*model.LoanReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LoanReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LoanReport{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
