package contract

import (
	"context"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
)

type DeepLinkRepository interface {
	Create(ctx context.Context, link *entity.DeepLink) error
	Update(ctx context.Context, link *entity.DeepLink) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeepLink, error)
}
