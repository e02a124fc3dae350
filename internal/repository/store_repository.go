package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 店舗の永続化（保存・取得）だけを約束。
type StoreRepository interface {
	//公開中（is_visible=true）の店舗を新しい順に返す
	ListVisible(ctx context.Context) ([]model.Store, error)

	FindByID(ctx context.Context, storeID int64) (model.Store, error)

	//セラーの店舗を1件取得（1セラー1店舗）
	FindBySellerID(ctx context.Context, sellerID int64) (model.Store, error)

	Create(ctx context.Context, s model.Store) (model.Store, error)
	Update(ctx context.Context, s model.Store) error
	SetVisibility(ctx context.Context, storeID int64, visible bool) error
}
