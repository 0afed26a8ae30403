package implementation

import (
	"context"
	"errors"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/mapper"
	"viewset-bot/internal/model"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeepLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DeepLinkMapper
}

func NewDeepLinkRepository(db *gorm.DB) contract.DeepLinkRepository {
	return &DeepLinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDeepLinkMapper(),
	}
}

func (r *DeepLinkRepositoryImpl) Create(ctx context.Context, link *entity.DeepLink) error {
	if link.Id == uuid.Nil {
		link.Id = uuid.New()
	}
	m := r.mapper.ToModel(link)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *DeepLinkRepositoryImpl) Update(ctx context.Context, link *entity.DeepLink) error {
	m := r.mapper.ToModel(link)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *DeepLinkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeepLink, error) {
	var m model.DeepLink
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
