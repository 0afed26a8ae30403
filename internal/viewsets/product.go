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

var yesNo = []form.Choice{
	{Value: "true", Label: "Yes"},
	{Value: "false", Label: "No"},
}

// categoryChoices loads every category as a ref choice.
func categoryChoices(uowFactory unitofwork.RepositoryFactory) func(ctx context.Context) ([]form.Choice, error) {
	return func(ctx context.Context) ([]form.Choice, error) {
		categories, err := uowFactory.NewUnitOfWork(ctx).CategoryRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		out := make([]form.Choice, 0, len(categories))
		for _, c := range categories {
			out = append(out, form.Choice{Value: formatID(c.Id), Label: c.Name})
		}
		return out, nil
	}
}

func ProductForm(uowFactory unitofwork.RepositoryFactory) *form.Form {
	return &form.Form{
		Name: "ProductForm",
		Fields: []form.Field{
			{Name: "name", Label: "Name", Kind: cursor.KindString, Required: true, Rules: "max=128"},
			{Name: "category", Label: "Category", Kind: cursor.KindRef, Required: true, Strict: true, LoadChoices: categoryChoices(uowFactory)},
			{Name: "price", Label: "Price", Kind: cursor.KindFloat, Required: true, Rules: "gt=0"},
			{Name: "visible", Label: "Visible", Kind: cursor.KindBool, Required: true, Strict: true, Choices: yesNo},
		},
	}
}

type ProductCollection struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProductCollection(uowFactory unitofwork.RepositoryFactory) *ProductCollection {
	return &ProductCollection{uowFactory: uowFactory}
}

func productRecord(p *entity.Product) *viewset.Record {
	values := map[string]cursor.Value{
		"name":     cursor.String(p.Name),
		"category": cursor.Null(),
		"price":    cursor.Float(p.Price),
		"visible":  cursor.Bool(p.IsVisible),
	}
	if p.CategoryId != 0 {
		values["category"] = cursor.Ref(formatID(p.CategoryId))
	}
	return &viewset.Record{ID: formatID(p.Id), Values: values}
}

func fillProduct(p *entity.Product, values map[string]cursor.Value) {
	p.Name = textOf(values, "name")
	if id, ok := parseID(textOf(values, "category")); ok {
		p.CategoryId = id
	}
	p.Price, _ = values["price"].AsFloat()
	p.IsVisible = boolOf(values, "visible")
}

func (c *ProductCollection) find(ctx context.Context, id string) (*entity.Product, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return c.uowFactory.NewUnitOfWork(ctx).ProductRepository().FindOne(ctx, specification.ByID{ID: key})
}

func (c *ProductCollection) Get(ctx context.Context, _ viewset.Scope, id string) (*viewset.Record, error) {
	p, err := c.find(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return productRecord(p), nil
}

func (c *ProductCollection) List(ctx context.Context, _ viewset.Scope, opts viewset.ListOptions) ([]viewset.Record, int, error) {
	repo := c.uowFactory.NewUnitOfWork(ctx).ProductRepository()
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	products, err := repo.FindAll(ctx, page(opts)...)
	if err != nil {
		return nil, 0, err
	}
	out := make([]viewset.Record, 0, len(products))
	for _, p := range products {
		out = append(out, *productRecord(p))
	}
	return out, int(total), nil
}

func (c *ProductCollection) Create(ctx context.Context, _ viewset.Scope, values map[string]cursor.Value) (*viewset.Record, error) {
	p := &entity.Product{}
	fillProduct(p, values)
	if err := c.uowFactory.NewUnitOfWork(ctx).ProductRepository().Create(ctx, p); err != nil {
		return nil, err
	}
	return productRecord(p), nil
}

func (c *ProductCollection) Update(ctx context.Context, _ viewset.Scope, rec *viewset.Record, values map[string]cursor.Value) (*viewset.Record, error) {
	p, err := c.find(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s disappeared", rec.ID)
	}
	fillProduct(p, values)
	if err := c.uowFactory.NewUnitOfWork(ctx).ProductRepository().Update(ctx, p); err != nil {
		return nil, err
	}
	return productRecord(p), nil
}

func (c *ProductCollection) Delete(ctx context.Context, _ viewset.Scope, rec *viewset.Record) error {
	id, _ := parseID(rec.ID)
	return c.uowFactory.NewUnitOfWork(ctx).ProductRepository().Delete(ctx, id)
}

func NewProductViewset(uowFactory unitofwork.RepositoryFactory, tr bot.Translator) *viewset.Viewset {
	return viewset.MustNew(viewset.Config{
		Name:       "Product",
		Form:       ProductForm(uowFactory),
		Collection: NewProductCollection(uowFactory),
		Translator: tr,
	})
}
