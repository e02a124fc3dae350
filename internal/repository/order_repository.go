package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// セラーダッシュボード用の集計
type StoreSalesStats struct {
	TotalOrders int64 `json:"total_orders"`
	TotalSales  int64 `json:"total_sales"`
	TodaySales  int64 `json:"today_sales"`
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//買い手の注文を新しい順に返す
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//店舗の注文を新しい順に返す（limit<=0は全件）
	ListByStoreID(ctx context.Context, storeID int64, limit int) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//注文数・売上合計・当日売上をまとめて取る
	SalesStatsByStoreID(ctx context.Context, storeID int64, dayStart time.Time) (StoreSalesStats, error)
}
