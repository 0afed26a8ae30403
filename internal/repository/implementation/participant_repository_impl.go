package implementation

import (
	"context"
	"errors"
	"time"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/mapper"
	"viewset-bot/internal/model"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ParticipantRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ParticipantMapper
}

func NewParticipantRepository(db *gorm.DB) contract.ParticipantRepository {
	return &ParticipantRepositoryImpl{
		db:     db,
		mapper: mapper.NewParticipantMapper(),
	}
}

func (r *ParticipantRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ParticipantRepositoryImpl) Create(ctx context.Context, participant *entity.Participant) error {
	m := r.mapper.ToModel(participant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*participant = *r.mapper.ToEntity(m)
	return nil
}

func (r *ParticipantRepositoryImpl) Update(ctx context.Context, participant *entity.Participant) error {
	m := r.mapper.ToModel(participant)
	err := r.db.WithContext(ctx).
		Model(&model.Participant{Id: m.Id}).
		Select("username", "first_name", "last_name", "language_code", "timezone", "is_staff", "is_active").
		Updates(m).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *ParticipantRepositoryImpl) SaveCursor(ctx context.Context, id int64, route string, snapshot []byte, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Participant{Id: id}).
		Updates(map[string]interface{}{
			"route":            route,
			"cursor_snapshot":  datatypes.JSON(snapshot),
			"route_updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ParticipantRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Participant, error) {
	var m model.Participant
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ParticipantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Participant, error) {
	var models []*model.Participant
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ParticipantRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Participant{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
