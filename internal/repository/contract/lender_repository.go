package contract

import (
	"context"

	"github.com/google/uuid"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/repository/specification"
)

type LenderRepository interface {
	Create(ctx context.Context, lender *entity.Lender) error
	Update(ctx context.Context, lender *entity.Lender) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lender, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lender, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
