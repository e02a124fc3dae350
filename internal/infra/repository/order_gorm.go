package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListByStoreID(ctx context.Context, storeID int64, limit int) ([]model.Order, error) {
	q := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at desc")

	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []model.Order
	if err := q.Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 注文数・売上合計・当日売上をまとめて集計
func (r *OrderGormRepository) SalesStatsByStoreID(ctx context.Context, storeID int64, dayStart time.Time) (repo.StoreSalesStats, error) {
	var stats repo.StoreSalesStats

	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("count(*) as total_orders, coalesce(sum(total_amount), 0) as total_sales").
		Where("store_id = ?", storeID).
		Scan(&stats).Error
	if err != nil {
		return repo.StoreSalesStats{}, err
	}

	var today struct {
		TodaySales int64
	}
	err = r.db.WithContext(ctx).Model(&model.Order{}).
		Select("coalesce(sum(total_amount), 0) as today_sales").
		Where("store_id = ? AND created_at >= ?", storeID, dayStart).
		Scan(&today).Error
	if err != nil {
		return repo.StoreSalesStats{}, err
	}

	stats.TodaySales = today.TodaySales
	return stats, nil
}
