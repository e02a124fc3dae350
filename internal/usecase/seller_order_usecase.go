package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/notifier"
	repo "app/internal/repository"

	"github.com/rs/zerolog"
)

// SellerOrderUsecase は店舗側の注文管理（一覧・ステータス更新・ダッシュボード）。
type SellerOrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	storeRepo     repo.StoreRepository
	notifier      notifier.Notifier
	log           zerolog.Logger
}

func NewSellerOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	storeRepo repo.StoreRepository,
	n notifier.Notifier,
	log zerolog.Logger,
) *SellerOrderUsecase {
	return &SellerOrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		storeRepo:     storeRepo,
		notifier:      n,
		log:           log,
	}
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

type DashboardStatsOutput struct {
	TotalOrders  int64         `json:"total_orders"`
	TotalSales   int64         `json:"total_sales"`
	TodaySales   int64         `json:"today_sales"`
	RecentOrders []model.Order `json:"recent_orders"`
}

// 自店舗の注文一覧（新しい順）
func (u *SellerOrderUsecase) ListStoreOrders(ctx context.Context, sellerID int64) (OrderListOutput, error) {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return OrderListOutput{}, err
	}

	orders, err := u.orderRepo.ListByStoreID(ctx, store.ID, 0)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		orderItems, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outItems := make([]OrderItemOutput, 0, len(orderItems))
		for _, oi := range orderItems {
			outItems = append(outItems, OrderItemOutput{
				ProductID: oi.ProductID,
				Qty:       oi.Qty,
				Price:     oi.Price,
			})
		}
		items = append(items, OrderOutput{Order: o, Items: outItems})
	}

	return OrderListOutput{Items: items}, nil
}

// ダッシュボード（注文数・累計売上・当日売上・直近3件）
func (u *SellerOrderUsecase) DashboardStats(ctx context.Context, sellerID int64) (DashboardStatsOutput, error) {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return DashboardStatsOutput{}, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := u.orderRepo.SalesStatsByStoreID(ctx, store.ID, dayStart)
	if err != nil {
		return DashboardStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	recent, err := u.orderRepo.ListByStoreID(ctx, store.ID, 3)
	if err != nil {
		return DashboardStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardStatsOutput{
		TotalOrders:  stats.TotalOrders,
		TotalSales:   stats.TotalSales,
		TodaySales:   stats.TodaySales,
		RecentOrders: recent,
	}, nil
}

// UpdateStatus は注文ステータスを遷移表に従って進める。
// completedへの遷移では台帳への記録を同一Txで行う。
func (u *SellerOrderUsecase) UpdateStatus(ctx context.Context, sellerID int64, orderID int64, in UpdateOrderStatusInput) (model.Order, error) {
	store, err := u.requireStore(ctx, sellerID)
	if err != nil {
		return model.Order{}, err
	}

	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	next := model.OrderStatus(in.Status)
	if !next.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var updated model.Order

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 他店舗の注文は存在しない扱い
		if order.StoreID != store.ID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if !order.Status.CanTransitionTo(next) {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("cannot transition from %s to %s", order.Status, next))
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// completed成立と台帳記録はセット。order_id一意のupsertなので二重記録にはならない。
		if next == model.OrderStatusCompleted {
			if err := r.CompletedOrders().Upsert(ctx, model.CompletedOrder{
				OrderID:     order.ID,
				UserID:      order.UserID,
				StoreID:     order.StoreID,
				TotalAmount: order.TotalAmount,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.Status = next
		updated = order
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	// SMSは確定後に投げっぱなし。失敗しても注文処理には影響させない。
	u.notifyStatus(updated)

	return updated, nil
}

// CancelOrder はキャンセル。終端（completed/cancelled）からは不可。
func (u *SellerOrderUsecase) CancelOrder(ctx context.Context, sellerID int64, orderID int64) (model.Order, error) {
	return u.UpdateStatus(ctx, sellerID, orderID, UpdateOrderStatusInput{
		Status: string(model.OrderStatusCancelled),
	})
}

// 店舗必須チェック
func (u *SellerOrderUsecase) requireStore(ctx context.Context, sellerID int64) (model.Store, error) {
	if sellerID <= 0 {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	store, err := u.storeRepo.FindBySellerID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "create store first")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return store, nil
}

func (u *SellerOrderUsecase) notifyStatus(order model.Order) {
	msg := fmt.Sprintf("ご注文 #%d のステータスが「%s」になりました", order.ID, order.Status)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := u.notifier.Send(ctx, order.CustomerPhone, msg); err != nil {
			u.log.Warn().Err(err).Int64("order_id", order.ID).Msg("status notify failed")
		}
	}()
}
