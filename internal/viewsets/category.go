package viewsets

import (
	"context"
	"fmt"
	"strings"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/viewset"
)

// LockedCategory cannot be changed or deleted through the bot.
const LockedCategory = "hats"

var CategoryForm = &form.Form{
	Name: "CategoryForm",
	Fields: []form.Field{
		{Name: "name", Label: "Name", Kind: cursor.KindString, Required: true, Rules: "max=128"},
		{Name: "info", Label: "Info", Kind: cursor.KindString},
	},
}

type CategoryCollection struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCategoryCollection(uowFactory unitofwork.RepositoryFactory) *CategoryCollection {
	return &CategoryCollection{uowFactory: uowFactory}
}

func categoryRecord(c *entity.Category) *viewset.Record {
	return &viewset.Record{
		ID: formatID(c.Id),
		Values: map[string]cursor.Value{
			"name": cursor.String(c.Name),
			"info": cursor.String(c.Info),
		},
	}
}

func (c *CategoryCollection) find(ctx context.Context, id string) (*entity.Category, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: key})
}

func (c *CategoryCollection) Get(ctx context.Context, _ viewset.Scope, id string) (*viewset.Record, error) {
	category, err := c.find(ctx, id)
	if err != nil || category == nil {
		return nil, err
	}
	return categoryRecord(category), nil
}

func (c *CategoryCollection) List(ctx context.Context, _ viewset.Scope, opts viewset.ListOptions) ([]viewset.Record, int, error) {
	repo := c.uowFactory.NewUnitOfWork(ctx).CategoryRepository()
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	categories, err := repo.FindAll(ctx, page(opts)...)
	if err != nil {
		return nil, 0, err
	}
	out := make([]viewset.Record, 0, len(categories))
	for _, category := range categories {
		out = append(out, *categoryRecord(category))
	}
	return out, int(total), nil
}

func (c *CategoryCollection) Create(ctx context.Context, _ viewset.Scope, values map[string]cursor.Value) (*viewset.Record, error) {
	category := &entity.Category{
		Name: textOf(values, "name"),
		Info: textOf(values, "info"),
	}
	if err := c.uowFactory.NewUnitOfWork(ctx).CategoryRepository().Create(ctx, category); err != nil {
		return nil, err
	}
	return categoryRecord(category), nil
}

func (c *CategoryCollection) Update(ctx context.Context, _ viewset.Scope, rec *viewset.Record, values map[string]cursor.Value) (*viewset.Record, error) {
	category, err := c.find(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s disappeared", rec.ID)
	}
	category.Name = textOf(values, "name")
	category.Info = textOf(values, "info")
	if err := c.uowFactory.NewUnitOfWork(ctx).CategoryRepository().Update(ctx, category); err != nil {
		return nil, err
	}
	return categoryRecord(category), nil
}

func (c *CategoryCollection) Delete(ctx context.Context, _ viewset.Scope, rec *viewset.Record) error {
	id, _ := parseID(rec.ID)
	return c.uowFactory.NewUnitOfWork(ctx).CategoryRepository().Delete(ctx, id)
}

// lockedCategories denies change and delete of the locked category.
func lockedCategories(coll *CategoryCollection) viewset.Permission {
	return viewset.PermissionFunc(func(ctx context.Context, _ bot.Actor, action viewset.Action, args []string) bool {
		if action != viewset.ActionChange && action != viewset.ActionDelete {
			return true
		}
		if len(args) == 0 {
			return true
		}
		category, err := coll.find(ctx, args[0])
		if err != nil || category == nil {
			return true
		}
		return !strings.EqualFold(category.Name, LockedCategory)
	})
}

func NewCategoryViewset(uowFactory unitofwork.RepositoryFactory, tr bot.Translator) *viewset.Viewset {
	coll := NewCategoryCollection(uowFactory)
	return viewset.MustNew(viewset.Config{
		Name:        "Category",
		Form:        CategoryForm,
		Collection:  coll,
		Permissions: []viewset.Permission{lockedCategories(coll)},
		Prechoices: map[string][]form.Choice{
			"name": {
				{Value: "hats", Label: "Hats"},
				{Value: "shoes", Label: "Shoes"},
				{Value: "cloth", Label: "Cloth"},
			},
		},
		Translator: tr,
	})
}
