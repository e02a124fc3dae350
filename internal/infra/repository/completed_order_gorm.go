package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletedOrderGormRepository struct {
	db *gorm.DB
}

func NewCompletedOrderGormRepository(db *gorm.DB) *CompletedOrderGormRepository {
	return &CompletedOrderGormRepository{db: db}
}

// order_id一意のupsert
// 同じ注文で2回呼ばれても台帳行は1つのまま
func (r *CompletedOrderGormRepository) Upsert(ctx context.Context, record model.CompletedOrder) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).
		Create(&record).Error
}

func (r *CompletedOrderGormRepository) ListByStoreID(ctx context.Context, storeID int64) ([]model.CompletedOrder, error) {
	var records []model.CompletedOrder
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id desc").
		Find(&records).Error
	if err != nil {
		return []model.CompletedOrder{}, err
	}
	return records, nil
}
