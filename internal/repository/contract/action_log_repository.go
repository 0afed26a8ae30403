package contract

import (
	"context"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
)

type ActionLogRepository interface {
	Create(ctx context.Context, log *entity.ActionLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActionLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
