package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders          repo.OrderRepository
	orderItems      repo.OrderItemRepository
	cartItems       repo.CartItemRepository
	products        repo.ProductRepository
	stores          repo.StoreRepository
	completedOrders repo.CompletedOrderRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *txReposGorm) CartItems() repo.CartItemRepository             { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository               { return r.products }
func (r *txReposGorm) Stores() repo.StoreRepository                   { return r.stores }
func (r *txReposGorm) CompletedOrders() repo.CompletedOrderRepository { return r.completedOrders }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:          NewOrderGormRepository(tx),
			orderItems:      NewOrderItemGormRepository(tx),
			cartItems:       NewCartItemGormRepository(tx),
			products:        NewProductGormRepository(tx),
			stores:          NewStoreGormRepository(tx),
			completedOrders: NewCompletedOrderGormRepository(tx),
		}
		return fn(r)
	})
}
