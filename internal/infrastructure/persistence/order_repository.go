package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/domain/trade"
	"github.com/shopfeed/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindBasket returns the user's basket with items
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*trade.Order, error) {
	db := conn(ctx, r.db)
	var model models.OrderModel
	if err := db.Where("user_id = ? AND status = ?", userID, trade.OrderStatusBasket).
		First(&model).Error; err != nil {
		return nil, translate(err, "")
	}
	return r.one(db, &model)
}

// GetOrCreateBasket returns the user's basket, creating it when absent
func (r *GormOrderRepository) GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*trade.Order, error) {
	model, err := firstOrInsert(ctx, r.db, models.OrderModelFromDomain(trade.NewBasket(userID)),
		"user_id = ? AND status = ?", userID, trade.OrderStatusBasket)
	if err != nil {
		return nil, translate(err, "")
	}
	return r.one(conn(ctx, r.db), model)
}

// FindByID returns an order with items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	db := conn(ctx, r.db)
	var model models.OrderModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "")
	}
	return r.one(db, &model)
}

// FindByIDForUser returns the order when it belongs to the user
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*trade.Order, error) {
	db := conn(ctx, r.db)
	var model models.OrderModel
	if err := db.First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err, "")
	}
	return r.one(db, &model)
}

// FindByUser lists every order of the user, the open basket included, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]trade.Order, error) {
	db := conn(ctx, r.db)
	var orderModels []models.OrderModel
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.withItems(db, orderModels)
}

// FindByShop lists placed orders that contain at least one listing of the shop
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]trade.Order, error) {
	db := conn(ctx, r.db)
	var orderModels []models.OrderModel
	if err := db.
		Where("status <> ?", trade.OrderStatusBasket).
		Where("EXISTS (SELECT 1 FROM order_items JOIN product_infos ON product_infos.id = order_items.product_info_id "+
			"WHERE order_items.order_id = orders.id AND product_infos.shop_id = ?)", shopID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.withItems(db, orderModels)
}

// Update persists status and contact of the order
func (r *GormOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	result := updateAll(ctx, r.db, models.OrderModelFromDomain(order))
	if result.Error != nil {
		return translate(result.Error, "The user already has a basket")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddItem stores a new order line
func (r *GormOrderRepository) AddItem(ctx context.Context, item *trade.OrderItem) error {
	return translate(insertGuarded(ctx, r.db, models.OrderItemModelFromDomain(item)), "Product is already in the basket")
}

// UpdateItemQuantity sets the quantity of an item of the order
func (r *GormOrderRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error) {
	result := conn(ctx, r.db).Model(&models.OrderItemModel{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// DeleteItem removes an item of the order
func (r *GormOrderRepository) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Delete(&models.OrderItemModel{}, "id = ? AND order_id = ?", itemID, orderID)
	return result.RowsAffected, result.Error
}

func (r *GormOrderRepository) one(db *gorm.DB, model *models.OrderModel) (*trade.Order, error) {
	orders, err := r.withItems(db, []models.OrderModel{*model})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// withItems converts order rows and attaches their items and listings
func (r *GormOrderRepository) withItems(db *gorm.DB, orderModels []models.OrderModel) ([]trade.Order, error) {
	orders := make([]trade.Order, len(orderModels))
	if len(orderModels) == 0 {
		return orders, nil
	}
	index := make(map[uuid.UUID]int, len(orderModels))
	orderIDs := make([]uuid.UUID, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
		index[orderModels[i].ID] = i
		orderIDs[i] = orderModels[i].ID
	}

	var itemModels []models.OrderItemModel
	if err := db.Where("order_id IN ?", orderIDs).Order("id ASC").Find(&itemModels).Error; err != nil {
		return nil, err
	}
	productIDs := make([]uuid.UUID, 0, len(itemModels))
	for _, m := range itemModels {
		productIDs = append(productIDs, m.ProductInfoID)
	}
	listings, err := findListingsByIDs(db, productIDs)
	if err != nil {
		return nil, err
	}

	for i := range itemModels {
		item := itemModels[i].ToDomain()
		item.Product = listings[item.ProductInfoID]
		o := &orders[index[item.OrderID]]
		o.Items = append(o.Items, item)
	}
	return orders, nil
}
