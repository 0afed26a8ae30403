package unitofwork

import (
	"context"

	"viewset-bot/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ParticipantRepository() contract.ParticipantRepository
	ActionLogRepository() contract.ActionLogRepository
	DeepLinkRepository() contract.DeepLinkRepository
	MenuElemRepository() contract.MenuElemRepository

	CategoryRepository() contract.CategoryRepository
	ProductRepository() contract.ProductRepository
	OrderRepository() contract.OrderRepository
}
