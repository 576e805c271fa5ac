package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductInfoRepository implements ProductInfoRepository using GORM
type GormProductInfoRepository struct {
	db *gorm.DB
}

// NewGormProductInfoRepository creates a new GormProductInfoRepository
func NewGormProductInfoRepository(db *gorm.DB) *GormProductInfoRepository {
	return &GormProductInfoRepository{db: db}
}

// Create stores a new listing
func (r *GormProductInfoRepository) Create(ctx context.Context, info *catalog.ProductInfo) error {
	return translate(
		conn(ctx, r.db).Create(models.ProductInfoModelFromDomain(info)).Error,
		"Product with this id already exists in the shop",
	)
}

// DeleteByShop hard-deletes the shop's listings, their parameter values and
// every order item referencing them
func (r *GormProductInfoRepository) DeleteByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var deleted int64
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		listings := func() *gorm.DB {
			return tx.Model(&models.ProductInfoModel{}).Select("id").Where("shop_id = ?", shopID)
		}

		if err := tx.Where("product_info_id IN (?)", listings()).
			Delete(&models.ProductParameterModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_info_id IN (?)", listings()).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("shop_id = ?", shopID).Delete(&models.ProductInfoModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// CountByShop counts the shop's listings
func (r *GormProductInfoRepository) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ProductInfoModel{}).Where("shop_id = ?", shopID).Count(&count).Error
	return count, err
}

// FindListing loads one listing regardless of the shop status
func (r *GormProductInfoRepository) FindListing(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	listings, err := findListingsByIDs(conn(ctx, r.db), []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	listing, ok := listings[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return listing, nil
}

// FindListings returns the catalog view: distinct listings of shops that
// accept orders, narrowed by the filter
func (r *GormProductInfoRepository) FindListings(ctx context.Context, filter catalog.ListingFilter) ([]catalog.Listing, error) {
	db := conn(ctx, r.db)
	query := listingQuery(db).Where("shops.status = ?", true)
	if filter.ShopID != nil {
		query = query.Where("product_infos.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryID != nil {
		query = query.Where("goods.category_id = ?", *filter.CategoryID)
	}

	var rows []listingRow
	if err := query.Order("goods_name ASC, shop_name ASC, external_id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return withParameters(db, rows)
}

// listingRow is the flat shape of the listing join
type listingRow struct {
	ID           uuid.UUID
	ExternalID   int64
	Model        string
	Price        decimal.Decimal
	PriceRRC     decimal.Decimal
	Quantity     int
	GoodsID      uuid.UUID
	GoodsName    string
	CategoryID   uuid.UUID
	CategoryName string
	ShopID       uuid.UUID
	ShopName     string
	ShopOwnerID  uuid.UUID
	ShopStatus   bool
}

func (row listingRow) toDomain() catalog.Listing {
	return catalog.Listing{
		ID:           row.ID,
		ExternalID:   row.ExternalID,
		Model:        row.Model,
		Price:        row.Price,
		PriceRRC:     row.PriceRRC,
		Quantity:     row.Quantity,
		GoodsID:      row.GoodsID,
		GoodsName:    row.GoodsName,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		ShopID:       row.ShopID,
		ShopName:     row.ShopName,
		ShopOwnerID:  row.ShopOwnerID,
		ShopStatus:   row.ShopStatus,
		Parameters:   make([]catalog.ParameterValue, 0),
	}
}

type parameterRow struct {
	ProductInfoID uuid.UUID
	Name          string
	Value         string
}

const listingColumns = "DISTINCT product_infos.id, product_infos.external_id, product_infos.model, " +
	"product_infos.price, product_infos.price_rrc, product_infos.quantity, " +
	"goods.id AS goods_id, goods.name AS goods_name, " +
	"categories.id AS category_id, categories.name AS category_name, " +
	"shops.id AS shop_id, shops.name AS shop_name, shops.user_id AS shop_owner_id, shops.status AS shop_status"

func listingQuery(db *gorm.DB) *gorm.DB {
	return db.Table("product_infos").
		Select(listingColumns).
		Joins("JOIN goods ON goods.id = product_infos.goods_id").
		Joins("JOIN categories ON categories.id = goods.category_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id")
}

// findListingsByIDs loads the listings with the given ids keyed by id
func findListingsByIDs(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*catalog.Listing, error) {
	byID := make(map[uuid.UUID]*catalog.Listing, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var rows []listingRow
	if err := listingQuery(db).Where("product_infos.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	listings, err := withParameters(db, rows)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		byID[listings[i].ID] = &listings[i]
	}
	return byID, nil
}

// withParameters converts rows to listings and attaches their parameter values
func withParameters(db *gorm.DB, rows []listingRow) ([]catalog.Listing, error) {
	listings := make([]catalog.Listing, len(rows))
	if len(rows) == 0 {
		return listings, nil
	}
	index := make(map[uuid.UUID]int, len(rows))
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		listings[i] = row.toDomain()
		index[row.ID] = i
		ids[i] = row.ID
	}

	var params []parameterRow
	if err := db.Table("product_parameters").
		Select("product_parameters.product_info_id, parameters.name, product_parameters.value").
		Joins("JOIN parameters ON parameters.id = product_parameters.parameter_id").
		Where("product_parameters.product_info_id IN ?", ids).
		Order("parameters.name ASC").
		Scan(&params).Error; err != nil {
		return nil, err
	}
	for _, p := range params {
		i := index[p.ProductInfoID]
		listings[i].Parameters = append(listings[i].Parameters, catalog.ParameterValue{Name: p.Name, Value: p.Value})
	}
	return listings, nil
}
