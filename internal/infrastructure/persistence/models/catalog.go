package models

import (
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ShopModel is the persistence model for shops
type ShopModel struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shops_user"`
	Name   string    `gorm:"type:varchar(50);not null"`
	URL    string    `gorm:"type:varchar(255)"`
	Status bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop
func (m *ShopModel) ToDomain() *catalog.Shop {
	return &catalog.Shop{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Name:       m.Name,
		URL:        m.URL,
		Status:     m.Status,
	}
}

// ShopModelFromDomain creates a persistence model from a domain Shop
func ShopModelFromDomain(s *catalog.Shop) *ShopModel {
	m := &ShopModel{
		UserID: s.UserID,
		Name:   s.Name,
		URL:    s.URL,
		Status: s.Status,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// CategoryModel is the persistence model for categories
type CategoryModel struct {
	BaseModel
	ExternalID int64  `gorm:"not null;uniqueIndex:idx_categories_external_name,priority:1"`
	Name       string `gorm:"type:varchar(40);not null;uniqueIndex:idx_categories_external_name,priority:2"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		ExternalID: m.ExternalID,
		Name:       m.Name,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{ExternalID: c.ExternalID, Name: c.Name}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ShopCategoryModel is the shop <-> category join row
type ShopCategoryModel struct {
	ShopID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (ShopCategoryModel) TableName() string {
	return "shop_categories"
}

// GoodsModel is the persistence model for goods
type GoodsModel struct {
	BaseModel
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_goods_category_name,priority:1"`
	Name       string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_goods_category_name,priority:2"`
}

// TableName returns the table name for GORM
func (GoodsModel) TableName() string {
	return "goods"
}

// ToDomain converts the persistence model to domain Goods
func (m *GoodsModel) ToDomain() *catalog.Goods {
	return &catalog.Goods{
		BaseEntity: m.BaseModel.ToDomain(),
		CategoryID: m.CategoryID,
		Name:       m.Name,
	}
}

// GoodsModelFromDomain creates a persistence model from domain Goods
func GoodsModelFromDomain(g *catalog.Goods) *GoodsModel {
	m := &GoodsModel{CategoryID: g.CategoryID, Name: g.Name}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}

// ProductInfoModel is the persistence model for listings
type ProductInfoModel struct {
	BaseModel
	GoodsID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_infos_goods_external_shop,priority:1"`
	ExternalID int64           `gorm:"not null;uniqueIndex:idx_product_infos_goods_external_shop,priority:2"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_infos_goods_external_shop,priority:3"`
	Model      string          `gorm:"type:varchar(80)"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PriceRRC   decimal.Decimal `gorm:"column:price_rrc;type:decimal(18,2);not null"`
	Quantity   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductInfoModel) TableName() string {
	return "product_infos"
}

// ToDomain converts the persistence model to a domain ProductInfo
func (m *ProductInfoModel) ToDomain() *catalog.ProductInfo {
	return &catalog.ProductInfo{
		BaseEntity: m.BaseModel.ToDomain(),
		GoodsID:    m.GoodsID,
		ShopID:     m.ShopID,
		ExternalID: m.ExternalID,
		Model:      m.Model,
		Price:      m.Price,
		PriceRRC:   m.PriceRRC,
		Quantity:   m.Quantity,
	}
}

// ProductInfoModelFromDomain creates a persistence model from a domain ProductInfo
func ProductInfoModelFromDomain(p *catalog.ProductInfo) *ProductInfoModel {
	m := &ProductInfoModel{
		GoodsID:    p.GoodsID,
		ShopID:     p.ShopID,
		ExternalID: p.ExternalID,
		Model:      p.Model,
		Price:      p.Price,
		PriceRRC:   p.PriceRRC,
		Quantity:   p.Quantity,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ParameterModel is the persistence model for parameter names
type ParameterModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_parameters_name"`
}

// TableName returns the table name for GORM
func (ParameterModel) TableName() string {
	return "parameters"
}

// ProductParameterModel is the persistence model for parameter values
type ProductParameterModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_info_param,priority:1"`
	ParameterID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_info_param,priority:2"`
	Value         string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (ProductParameterModel) TableName() string {
	return "product_parameters"
}

// ProductParameterModelFromDomain creates a persistence model from a domain ProductParameter
func ProductParameterModelFromDomain(p *catalog.ProductParameter) *ProductParameterModel {
	return &ProductParameterModel{
		ID:            p.ID,
		ProductInfoID: p.ProductInfoID,
		ParameterID:   p.ParameterID,
		Value:         p.Value,
	}
}
