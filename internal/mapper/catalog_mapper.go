package mapper

import (
	"viewset-bot/internal/entity"
	"viewset-bot/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) CategoryToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}
	return &entity.Category{Id: c.Id, Name: c.Name, Info: c.Info, CreatedAt: c.CreatedAt}
}

func (m *CatalogMapper) CategoryToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{Id: c.Id, Name: c.Name, Info: c.Info, CreatedAt: c.CreatedAt}
}

func (m *CatalogMapper) CategoriesToEntities(categories []*model.Category) []*entity.Category {
	entities := make([]*entity.Category, len(categories))
	for i, c := range categories {
		entities[i] = m.CategoryToEntity(c)
	}
	return entities
}

func (m *CatalogMapper) ProductToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:         p.Id,
		Name:       p.Name,
		CategoryId: p.CategoryId,
		Price:      p.Price,
		IsVisible:  p.IsVisible,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *CatalogMapper) ProductToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:         p.Id,
		Name:       p.Name,
		CategoryId: p.CategoryId,
		Price:      p.Price,
		IsVisible:  p.IsVisible,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *CatalogMapper) ProductsToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ProductToEntity(p)
	}
	return entities
}

func (m *CatalogMapper) OrderToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	ids := make([]uint, len(o.Products))
	for i, p := range o.Products {
		ids[i] = p.Id
	}
	return &entity.Order{
		Id:            o.Id,
		ParticipantId: o.ParticipantId,
		Info:          o.Info,
		Status:        o.Status,
		ProductIds:    ids,
		CreatedAt:     o.CreatedAt,
	}
}

// OrderToModel leaves Products holding id-only stubs for association writes.
func (m *CatalogMapper) OrderToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	products := make([]model.Product, len(o.ProductIds))
	for i, id := range o.ProductIds {
		products[i] = model.Product{Id: id}
	}
	return &model.Order{
		Id:            o.Id,
		ParticipantId: o.ParticipantId,
		Info:          o.Info,
		Status:        o.Status,
		Products:      products,
		CreatedAt:     o.CreatedAt,
	}
}

func (m *CatalogMapper) OrdersToEntities(orders []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, len(orders))
	for i, o := range orders {
		entities[i] = m.OrderToEntity(o)
	}
	return entities
}
