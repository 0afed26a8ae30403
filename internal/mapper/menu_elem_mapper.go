package mapper

import (
	"encoding/json"
	"time"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/model"

	"gorm.io/datatypes"
)

type MenuElemMapper struct{}

func NewMenuElemMapper() *MenuElemMapper {
	return &MenuElemMapper{}
}

// ToEntity decodes the buttons column. A malformed column yields no buttons
// rather than hiding the whole block.
func (m *MenuElemMapper) ToEntity(e *model.MenuElem) *entity.MenuElem {
	if e == nil {
		return nil
	}

	var buttons [][]entity.MenuButton
	if len(e.Buttons) > 0 {
		if err := json.Unmarshal(e.Buttons, &buttons); err != nil {
			buttons = nil
		}
	}

	var command string
	if e.Command != nil {
		command = *e.Command
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.MenuElem{
		Id:         e.Id,
		Command:    command,
		Callbacks:  append([]string(nil), e.Callbacks...),
		Message:    e.Message,
		Buttons:    buttons,
		EmptyBlock: e.EmptyBlock,
		IsVisible:  e.IsVisible,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *MenuElemMapper) ToModel(e *entity.MenuElem) *model.MenuElem {
	if e == nil {
		return nil
	}

	var buttons datatypes.JSON
	if len(e.Buttons) > 0 {
		raw, _ := json.Marshal(e.Buttons)
		buttons = datatypes.JSON(raw)
	}

	var command *string
	if e.Command != "" {
		c := e.Command
		command = &c
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.MenuElem{
		Id:         e.Id,
		Command:    command,
		Callbacks:  datatypes.JSONSlice[string](e.Callbacks),
		Message:    e.Message,
		Buttons:    buttons,
		EmptyBlock: e.EmptyBlock,
		IsVisible:  e.IsVisible,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *MenuElemMapper) ToEntities(elems []*model.MenuElem) []*entity.MenuElem {
	entities := make([]*entity.MenuElem, len(elems))
	for i, e := range elems {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
