package contract

import (
	"context"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/repository/specification"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	Update(ctx context.Context, app *entity.Application) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
