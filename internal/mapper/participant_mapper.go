package mapper

import (
	"time"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/model"

	"gorm.io/datatypes"
)

type ParticipantMapper struct{}

func NewParticipantMapper() *ParticipantMapper {
	return &ParticipantMapper{}
}

func (m *ParticipantMapper) ToEntity(p *model.Participant) *entity.Participant {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Participant{
		Id:             p.Id,
		Username:       p.Username,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		LanguageCode:   p.LanguageCode,
		Timezone:       p.Timezone,
		IsStaff:        p.IsStaff,
		IsActive:       p.IsActive,
		Route:          p.Route,
		CursorSnapshot: []byte(p.CursorSnapshot),
		RouteUpdatedAt: p.RouteUpdatedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ParticipantMapper) ToModel(p *entity.Participant) *model.Participant {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	var snapshot datatypes.JSON
	if len(p.CursorSnapshot) > 0 {
		snapshot = datatypes.JSON(p.CursorSnapshot)
	}

	return &model.Participant{
		Id:             p.Id,
		Username:       p.Username,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		LanguageCode:   p.LanguageCode,
		Timezone:       p.Timezone,
		IsStaff:        p.IsStaff,
		IsActive:       p.IsActive,
		Route:          p.Route,
		CursorSnapshot: snapshot,
		RouteUpdatedAt: p.RouteUpdatedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ParticipantMapper) ToEntities(participants []*model.Participant) []*entity.Participant {
	entities := make([]*entity.Participant, len(participants))
	for i, p := range participants {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
