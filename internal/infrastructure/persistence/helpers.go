package persistence

import (
	"context"

	"gorm.io/gorm"
)

// insertGuarded runs the insert inside its own (sub)transaction so that a
// unique violation does not abort an enclosing transaction
func insertGuarded(ctx context.Context, db *gorm.DB, value any) error {
	return conn(ctx, db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
}

// updateAll writes every column of model except its identity and creation
// time, matching on the primary key
func updateAll(ctx context.Context, db *gorm.DB, model any) *gorm.DB {
	return conn(ctx, db).Model(model).Select("*").Omit("id", "created_at").Updates(model)
}

// firstOrInsert loads the row matching query. When there is none it inserts
// fresh; if a concurrent writer wins the unique index race, the winner's row
// is loaded instead.
func firstOrInsert[M any](ctx context.Context, db *gorm.DB, fresh *M, query string, args ...any) (*M, error) {
	var found M
	err := conn(ctx, db).Where(query, args...).First(&found).Error
	if err == nil {
		return &found, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	if err := insertGuarded(ctx, db, fresh); err != nil {
		if !isDuplicate(err) {
			return nil, err
		}
		if err := conn(ctx, db).Where(query, args...).First(&found).Error; err != nil {
			return nil, translate(err, "")
		}
		return &found, nil
	}
	return fresh, nil
}
