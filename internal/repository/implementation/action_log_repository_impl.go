package implementation

import (
	"context"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/mapper"
	"viewset-bot/internal/model"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActionLogMapper
}

func NewActionLogRepository(db *gorm.DB) contract.ActionLogRepository {
	return &ActionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewActionLogMapper(),
	}
}

func (r *ActionLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActionLogRepositoryImpl) Create(ctx context.Context, log *entity.ActionLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActionLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActionLog, error) {
	var models []*model.ActionLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ActionLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ActionLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
