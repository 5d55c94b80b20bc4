package implementation

import (
	"context"

	"gorm.io/gorm"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/mapper"
	"loan-marketplace-be/internal/model"
	"loan-marketplace-be/internal/repository/contract"
	"loan-marketplace-be/internal/repository/specification"
)

type LenderMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LenderMessageMapper
}

func NewLenderMessageRepository(db *gorm.DB) contract.LenderMessageRepository {
	return &LenderMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewLenderMessageMapper(),
	}
}

func (r *LenderMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LenderMessageRepositoryImpl) Create(ctx context.Context, msg *entity.LenderMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *LenderMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LenderMessage, error) {
	var models []*model.LenderMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LenderMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LenderMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
