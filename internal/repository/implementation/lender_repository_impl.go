package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/mapper"
	"loan-marketplace-be/internal/model"
	"loan-marketplace-be/internal/repository/contract"
	"loan-marketplace-be/internal/repository/specification"
)

type LenderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LenderMapper
}

func NewLenderRepository(db *gorm.DB) contract.LenderRepository {
	return &LenderRepositoryImpl{
		db:     db,
		mapper: mapper.NewLenderMapper(),
	}
}

func (r *LenderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LenderRepositoryImpl) Create(ctx context.Context, lender *entity.Lender) error {
	m := r.mapper.ToModel(lender)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lender = *r.mapper.ToEntity(m)
	return nil
}

func (r *LenderRepositoryImpl) Update(ctx context.Context, lender *entity.Lender) error {
	m := r.mapper.ToModel(lender)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*lender = *r.mapper.ToEntity(m)
	return nil
}

func (r *LenderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Lender{}, id).Error
}

func (r *LenderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lender, error) {
	var m model.Lender
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LenderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lender, error) {
	var models []*model.Lender
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LenderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Lender{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
