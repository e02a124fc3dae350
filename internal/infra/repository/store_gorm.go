package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type StoreGormRepository struct {
	db *gorm.DB
}

func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

// 公開中の店舗を新しい順に返す
func (r *StoreGormRepository) ListVisible(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store

	err := r.db.WithContext(ctx).
		Where("is_visible = ?", true).
		Order("created_at desc").
		Find(&stores).Error
	if err != nil {
		return []model.Store{}, err
	}

	return stores, nil
}

func (r *StoreGormRepository) FindByID(ctx context.Context, storeID int64) (model.Store, error) {
	var s model.Store

	err := r.db.WithContext(ctx).Where("id = ?", storeID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Store{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Store{}, err
	}
	return s, nil
}

// セラーの店舗を取得（1セラー1店舗）
func (r *StoreGormRepository) FindBySellerID(ctx context.Context, sellerID int64) (model.Store, error) {
	var s model.Store

	err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Store{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Store{}, err
	}
	return s, nil
}

func (r *StoreGormRepository) Create(ctx context.Context, s model.Store) (model.Store, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Store{}, err
	}
	return s, nil
}

func (r *StoreGormRepository) Update(ctx context.Context, s model.Store) error {
	res := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":           s.Name,
			"description":    s.Description,
			"phone":          s.Phone,
			"messenger_link": s.MessengerLink,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// stores.is_visibleを更新
func (r *StoreGormRepository) SetVisibility(ctx context.Context, storeID int64, visible bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", storeID).
		Update("is_visible", visible)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
