package repository

import (
	"context"

	"app/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//店舗の商品を一覧取得
	ListByStoreID(ctx context.Context, storeID int64) ([]model.Product, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, productID int64) error
}
