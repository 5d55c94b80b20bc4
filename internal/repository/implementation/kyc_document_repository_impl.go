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

type KycDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KycDocumentMapper
}

func NewKycDocumentRepository(db *gorm.DB) contract.KycDocumentRepository {
	return &KycDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewKycDocumentMapper(),
	}
}

func (r *KycDocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KycDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.KycDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *KycDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KycDocument{}, id).Error
}

func (r *KycDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KycDocument, error) {
	var m model.KycDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KycDocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KycDocument, error) {
	var models []*model.KycDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KycDocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.KycDocument{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
