package contract

import (
	"context"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/repository/specification"
)

type LenderMessageRepository interface {
	Create(ctx context.Context, msg *entity.LenderMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LenderMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
