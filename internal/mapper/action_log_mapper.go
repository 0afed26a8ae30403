package mapper

import (
	"viewset-bot/internal/entity"
	"viewset-bot/internal/model"
)

type ActionLogMapper struct{}

func NewActionLogMapper() *ActionLogMapper {
	return &ActionLogMapper{}
}

func (m *ActionLogMapper) ToEntity(l *model.ActionLog) *entity.ActionLog {
	if l == nil {
		return nil
	}
	return &entity.ActionLog{
		Id:            l.Id,
		ParticipantId: l.ParticipantId,
		Type:          l.Type,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *ActionLogMapper) ToModel(l *entity.ActionLog) *model.ActionLog {
	if l == nil {
		return nil
	}
	return &model.ActionLog{
		Id:            l.Id,
		ParticipantId: l.ParticipantId,
		Type:          l.Type,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *ActionLogMapper) ToEntities(logs []*model.ActionLog) []*entity.ActionLog {
	entities := make([]*entity.ActionLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
