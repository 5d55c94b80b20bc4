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

type ApplicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApplicationMapper
}

func NewApplicationRepository(db *gorm.DB) contract.ApplicationRepository {
	return &ApplicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewApplicationMapper(),
	}
}

func (r *ApplicationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *entity.Application) error {
	m := r.mapper.ToModel(app)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*app = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, app *entity.Application) error {
	m := r.mapper.ToModel(app)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*app = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error) {
	var m model.Application
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ApplicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error) {
	var models []*model.Application
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ApplicationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Application{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
