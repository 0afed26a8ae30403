package service

import (
	"context"
	"fmt"
	"strings"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
)

// IMenuService answers events no route handles with editable content blocks.
type IMenuService interface {
	Lookup(ctx context.Context, actor bot.Actor, payload string) (*bot.Response, error)
}

type menuService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMenuService(uowFactory unitofwork.RepositoryFactory) IMenuService {
	return &menuService{uowFactory: uowFactory}
}

// Lookup matches a visible block by command for "/..." payloads and by
// callback list otherwise, then falls back to the visible empty block.
// It returns nil when nothing matches.
func (s *menuService) Lookup(ctx context.Context, _ bot.Actor, payload string) (*bot.Response, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).MenuElemRepository()

	var match specification.Specification
	if strings.HasPrefix(payload, bot.CommandMarker) {
		fields := strings.Fields(strings.TrimPrefix(payload, bot.CommandMarker))
		if len(fields) > 0 {
			match = specification.ByCommand{Command: fields[0]}
		}
	} else if payload != "" {
		match = specification.HasCallback{Data: payload}
	}

	if match != nil {
		elem, err := repo.FindOne(ctx, match, specification.VisibleOnly{}, specification.OrderBy{Field: "id"})
		if err != nil {
			return nil, fmt.Errorf("find menu element: %w", err)
		}
		if elem != nil {
			return render(elem), nil
		}
	}

	elem, err := repo.FindOne(ctx, specification.EmptyBlocks{}, specification.VisibleOnly{}, specification.OrderBy{Field: "id"})
	if err != nil {
		return nil, fmt.Errorf("find empty block: %w", err)
	}
	if elem == nil {
		return nil, nil
	}
	return render(elem), nil
}

func render(elem *entity.MenuElem) *bot.Response {
	keyboard := make(bot.Keyboard, 0, len(elem.Buttons))
	for _, row := range elem.Buttons {
		buttons := make([]bot.Button, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, bot.Button{Text: b.Text, Data: b.CallbackData, URL: b.URL})
		}
		if len(buttons) > 0 {
			keyboard = append(keyboard, buttons)
		}
	}
	if len(keyboard) == 0 {
		keyboard = nil
	}
	return bot.NewResponse(elem.Message, keyboard)
}
