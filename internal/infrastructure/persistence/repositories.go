package persistence

import "gorm.io/gorm"

// Repositories bundles every GORM repository over one connection
type Repositories struct {
	Users         *GormUserRepository
	Confirmations *GormConfirmationRepository
	Contacts      *GormContactRepository
	Shops         *GormShopRepository
	Categories    *GormCategoryRepository
	Goods         *GormGoodsRepository
	ProductInfos  *GormProductInfoRepository
	Parameters    *GormParameterRepository
	Orders        *GormOrderRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewGormUserRepository(db),
		Confirmations: NewGormConfirmationRepository(db),
		Contacts:      NewGormContactRepository(db),
		Shops:         NewGormShopRepository(db),
		Categories:    NewGormCategoryRepository(db),
		Goods:         NewGormGoodsRepository(db),
		ProductInfos:  NewGormProductInfoRepository(db),
		Parameters:    NewGormParameterRepository(db),
		Orders:        NewGormOrderRepository(db),
	}
}
