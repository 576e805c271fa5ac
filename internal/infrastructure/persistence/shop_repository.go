package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const duplicateShopMessage = "The user already owns a shop"

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Create creates a new shop
func (r *GormShopRepository) Create(ctx context.Context, shop *catalog.Shop) error {
	return translate(insertGuarded(ctx, r.db, models.ShopModelFromDomain(shop)), duplicateShopMessage)
}

// Update updates an existing shop
func (r *GormShopRepository) Update(ctx context.Context, shop *catalog.Shop) error {
	result := updateAll(ctx, r.db, models.ShopModelFromDomain(shop))
	if result.Error != nil {
		return translate(result.Error, duplicateShopMessage)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a shop by ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var model models.ShopModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// FindByOwner finds the shop owned by the user
func (r *GormShopRepository) FindByOwner(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var model models.ShopModel
	if err := conn(ctx, r.db).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// FindAccepting lists shops that accept orders
func (r *GormShopRepository) FindAccepting(ctx context.Context) ([]catalog.Shop, error) {
	return r.find(conn(ctx, r.db).Where("status = ?", true))
}

// FindWithURL lists shops that have a feed url
func (r *GormShopRepository) FindWithURL(ctx context.Context) ([]catalog.Shop, error) {
	return r.find(conn(ctx, r.db).Where("url IS NOT NULL AND url <> ''"))
}

func (r *GormShopRepository) find(query *gorm.DB) ([]catalog.Shop, error) {
	var shopModels []models.ShopModel
	if err := query.Order("name ASC").Find(&shopModels).Error; err != nil {
		return nil, err
	}
	shops := make([]catalog.Shop, len(shopModels))
	for i := range shopModels {
		shops[i] = *shopModels[i].ToDomain()
	}
	return shops, nil
}
