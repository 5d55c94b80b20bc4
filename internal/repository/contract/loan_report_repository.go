package contract

import (
	"context"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/repository/specification"
)

type LoanReportRepository interface {
	Create(ctx context.Context, report *entity.LoanReport) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoanReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoanReport, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
