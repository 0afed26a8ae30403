package mapper

import (
	"viewset-bot/internal/entity"
	"viewset-bot/internal/model"

	"gorm.io/datatypes"
)

type DeepLinkMapper struct{}

func NewDeepLinkMapper() *DeepLinkMapper {
	return &DeepLinkMapper{}
}

func (m *DeepLinkMapper) ToEntity(d *model.DeepLink) *entity.DeepLink {
	if d == nil {
		return nil
	}
	return &entity.DeepLink{
		Id:             d.Id,
		Title:          d.Title,
		Code:           d.Code,
		ParticipantIds: append([]int64(nil), d.ParticipantIds...),
		CreatedAt:      d.CreatedAt,
	}
}

func (m *DeepLinkMapper) ToModel(d *entity.DeepLink) *model.DeepLink {
	if d == nil {
		return nil
	}
	return &model.DeepLink{
		Id:             d.Id,
		Title:          d.Title,
		Code:           d.Code,
		ParticipantIds: datatypes.JSONSlice[int64](d.ParticipantIds),
		CreatedAt:      d.CreatedAt,
	}
}
