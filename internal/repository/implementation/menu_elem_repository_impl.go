package implementation

import (
	"context"
	"errors"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/mapper"
	"viewset-bot/internal/model"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"

	"gorm.io/gorm"
)

type MenuElemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MenuElemMapper
}

func NewMenuElemRepository(db *gorm.DB) contract.MenuElemRepository {
	return &MenuElemRepositoryImpl{
		db:     db,
		mapper: mapper.NewMenuElemMapper(),
	}
}

func (r *MenuElemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MenuElemRepositoryImpl) Create(ctx context.Context, elem *entity.MenuElem) error {
	m := r.mapper.ToModel(elem)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*elem = *r.mapper.ToEntity(m)
	return nil
}

func (r *MenuElemRepositoryImpl) Update(ctx context.Context, elem *entity.MenuElem) error {
	m := r.mapper.ToModel(elem)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*elem = *r.mapper.ToEntity(m)
	return nil
}

func (r *MenuElemRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MenuElem{}, id).Error
}

func (r *MenuElemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MenuElem, error) {
	var m model.MenuElem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MenuElemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MenuElem, error) {
	var models []*model.MenuElem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MenuElemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MenuElem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
