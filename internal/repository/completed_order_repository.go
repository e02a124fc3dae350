package repository

import (
	"context"

	"app/internal/domain/model"
)

// completed遷移の台帳。
type CompletedOrderRepository interface {
	//order_id一意のupsert。二重completedでも行は1つ。
	Upsert(ctx context.Context, record model.CompletedOrder) error
	ListByStoreID(ctx context.Context, storeID int64) ([]model.CompletedOrder, error)
}
