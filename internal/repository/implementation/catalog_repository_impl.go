package implementation

import (
	"context"
	"errors"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/mapper"
	"viewset-bot/internal/model"
	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Categories

type CategoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &CategoryRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entity.Category) error {
	m := r.mapper.CategoryToModel(category)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*category = *r.mapper.CategoryToEntity(m)
	return nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *entity.Category) error {
	m := r.mapper.CategoryToModel(category)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*category = *r.mapper.CategoryToEntity(m)
	return nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *CategoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	var m model.Category
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CategoryToEntity(&m), nil
}

func (r *CategoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var models []*model.Category
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CategoriesToEntities(models), nil
}

func (r *CategoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	if err := applySpecifications(r.db.WithContext(ctx).Model(&model.Category{}), specs...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Products

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ProductToModel(product)
	if err := r.db.WithContext(ctx).Omit("Category").Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ProductToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ProductToModel(product)
	if err := r.db.WithContext(ctx).Omit("Category").Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ProductToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProductToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ProductsToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	if err := applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Orders

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.OrderToModel(order)
	products := m.Products
	m.Products = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Model(m).Association("Products").Replace(products)
	})
	if err != nil {
		return err
	}
	m.Products = products
	*order = *r.mapper.OrderToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	m := r.mapper.OrderToModel(order)
	products := m.Products
	m.Products = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Save(m).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return tx.Model(m).Association("Products").Clear()
		}
		return tx.Model(m).Association("Products").Replace(products)
	})
	if err != nil {
		return err
	}
	m.Products = products
	*order = *r.mapper.OrderToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{Id: id}).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, id).Error
	})
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := applySpecifications(r.db.WithContext(ctx).Preload("Products"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OrderToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := applySpecifications(r.db.WithContext(ctx).Preload("Products"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.OrdersToEntities(models), nil
}

func (r *OrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	if err := applySpecifications(r.db.WithContext(ctx).Model(&model.Order{}), specs...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
