package contract

import (
	"context"

	"github.com/google/uuid"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/repository/specification"
)

type KycDocumentRepository interface {
	Create(ctx context.Context, doc *entity.KycDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KycDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KycDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
