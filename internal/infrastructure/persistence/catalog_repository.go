package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetOrCreate finds a category by external id and name, creating it when absent
func (r *GormCategoryRepository) GetOrCreate(ctx context.Context, externalID int64, name string) (*catalog.Category, error) {
	category, err := catalog.NewCategory(externalID, name)
	if err != nil {
		return nil, err
	}
	model, err := firstOrInsert(ctx, r.db, models.CategoryModelFromDomain(category),
		"external_id = ? AND name = ?", category.ExternalID, category.Name)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID returns the oldest category with the external id
func (r *GormCategoryRepository) FindByExternalID(ctx context.Context, externalID int64) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).
		Where("external_id = ?", externalID).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// LinkShop associates the category with the shop
func (r *GormCategoryRepository) LinkShop(ctx context.Context, categoryID, shopID uuid.UUID) error {
	return translate(conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ShopCategoryModel{ShopID: shopID, CategoryID: categoryID}).Error, "")
}

// FindAll lists every category ordered by name
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	if err := conn(ctx, r.db).Order("name ASC, external_id ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = *categoryModels[i].ToDomain()
	}
	return categories, nil
}

// GormGoodsRepository implements GoodsRepository using GORM
type GormGoodsRepository struct {
	db *gorm.DB
}

// NewGormGoodsRepository creates a new GormGoodsRepository
func NewGormGoodsRepository(db *gorm.DB) *GormGoodsRepository {
	return &GormGoodsRepository{db: db}
}

// GetOrCreate finds goods by category and name, creating them when absent
func (r *GormGoodsRepository) GetOrCreate(ctx context.Context, categoryID uuid.UUID, name string) (*catalog.Goods, error) {
	goods, err := catalog.NewGoods(categoryID, name)
	if err != nil {
		return nil, err
	}
	model, err := firstOrInsert(ctx, r.db, models.GoodsModelFromDomain(goods),
		"category_id = ? AND name = ?", goods.CategoryID, goods.Name)
	if err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// GormParameterRepository implements ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// GetOrCreate finds a parameter by name, creating it when absent
func (r *GormParameterRepository) GetOrCreate(ctx context.Context, name string) (*catalog.Parameter, error) {
	parameter, err := catalog.NewParameter(name)
	if err != nil {
		return nil, err
	}
	model, err := firstOrInsert(ctx, r.db,
		&models.ParameterModel{ID: parameter.ID, Name: parameter.Name},
		"name = ?", parameter.Name)
	if err != nil {
		return nil, err
	}
	return &catalog.Parameter{ID: model.ID, Name: model.Name}, nil
}

// AddValue stores the value of a parameter on a listing
func (r *GormParameterRepository) AddValue(ctx context.Context, value *catalog.ProductParameter) error {
	return translate(
		conn(ctx, r.db).Create(models.ProductParameterModelFromDomain(value)).Error,
		"Parameter is already set for this product",
	)
}
