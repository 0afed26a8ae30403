package viewsets

import (
	"context"
	"fmt"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/viewset"
)

var MenuElemForm = &form.Form{
	Name: "MenuElemForm",
	Fields: []form.Field{
		{Name: "command", Label: "Command", Kind: cursor.KindString, Prompt: true, Rules: "max=32"},
		{Name: "message", Label: "Message", Kind: cursor.KindString, Required: true, Rules: "max=4096"},
		{Name: "visible", Label: "Visible", Kind: cursor.KindBool, Required: true, Strict: true, Choices: yesNo},
	},
}

// MenuElemCollection manages content blocks. The first contextual filter,
// when set, keeps blocks whose command contains it.
type MenuElemCollection struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMenuElemCollection(uowFactory unitofwork.RepositoryFactory) *MenuElemCollection {
	return &MenuElemCollection{uowFactory: uowFactory}
}

func menuElemRecord(m *entity.MenuElem) *viewset.Record {
	return &viewset.Record{
		ID: formatID(m.Id),
		Values: map[string]cursor.Value{
			"command": cursor.String(m.Command),
			"message": cursor.String(m.Message),
			"visible": cursor.Bool(m.IsVisible),
		},
	}
}

func (c *MenuElemCollection) scoped(scope viewset.Scope) []specification.Specification {
	if f := scope.Filter(0); f != "" {
		return []specification.Specification{specification.Contains{Field: "command", Value: f}}
	}
	return nil
}

func (c *MenuElemCollection) find(ctx context.Context, scope viewset.Scope, id string) (*entity.MenuElem, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	specs := append(c.scoped(scope), specification.ByID{ID: key})
	return c.uowFactory.NewUnitOfWork(ctx).MenuElemRepository().FindOne(ctx, specs...)
}

func (c *MenuElemCollection) Get(ctx context.Context, scope viewset.Scope, id string) (*viewset.Record, error) {
	m, err := c.find(ctx, scope, id)
	if err != nil || m == nil {
		return nil, err
	}
	return menuElemRecord(m), nil
}

func (c *MenuElemCollection) List(ctx context.Context, scope viewset.Scope, opts viewset.ListOptions) ([]viewset.Record, int, error) {
	repo := c.uowFactory.NewUnitOfWork(ctx).MenuElemRepository()
	specs := c.scoped(scope)
	total, err := repo.Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	elems, err := repo.FindAll(ctx, append(specs, page(opts)...)...)
	if err != nil {
		return nil, 0, err
	}
	out := make([]viewset.Record, 0, len(elems))
	for _, m := range elems {
		out = append(out, *menuElemRecord(m))
	}
	return out, int(total), nil
}

func (c *MenuElemCollection) Create(ctx context.Context, _ viewset.Scope, values map[string]cursor.Value) (*viewset.Record, error) {
	m := &entity.MenuElem{
		Command:   textOf(values, "command"),
		Message:   textOf(values, "message"),
		IsVisible: boolOf(values, "visible"),
	}
	if err := c.uowFactory.NewUnitOfWork(ctx).MenuElemRepository().Create(ctx, m); err != nil {
		return nil, err
	}
	return menuElemRecord(m), nil
}

func (c *MenuElemCollection) Update(ctx context.Context, scope viewset.Scope, rec *viewset.Record, values map[string]cursor.Value) (*viewset.Record, error) {
	m, err := c.find(ctx, scope, rec.ID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("menu element %s disappeared", rec.ID)
	}
	m.Command = textOf(values, "command")
	m.Message = textOf(values, "message")
	m.IsVisible = boolOf(values, "visible")
	if err := c.uowFactory.NewUnitOfWork(ctx).MenuElemRepository().Update(ctx, m); err != nil {
		return nil, err
	}
	return menuElemRecord(m), nil
}

func (c *MenuElemCollection) Delete(ctx context.Context, _ viewset.Scope, rec *viewset.Record) error {
	id, _ := parseID(rec.ID)
	return c.uowFactory.NewUnitOfWork(ctx).MenuElemRepository().Delete(ctx, id)
}

func NewMenuElemViewset(uowFactory unitofwork.RepositoryFactory, tr bot.Translator) *viewset.Viewset {
	return viewset.MustNew(viewset.Config{
		Name:        "Menu element",
		Form:        MenuElemForm,
		Collection:  NewMenuElemCollection(uowFactory),
		Permissions: []viewset.Permission{viewset.StaffOnly},
		FilterCount: 1,
		Translator:  tr,
	})
}
