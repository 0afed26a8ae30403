package contract

import (
	"context"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
)

type MenuElemRepository interface {
	Create(ctx context.Context, elem *entity.MenuElem) error
	Update(ctx context.Context, elem *entity.MenuElem) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MenuElem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MenuElem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
