package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders          repo.OrderRepository
	orderItems      repo.OrderItemRepository
	cartItems       repo.CartItemRepository
	products        repo.ProductRepository
	stores          repo.StoreRepository
	completedOrders repo.CompletedOrderRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                   { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *TxReposMock) CartItems() repo.CartItemRepository             { return r.cartItems }
func (r *TxReposMock) Products() repo.ProductRepository               { return r.products }
func (r *TxReposMock) Stores() repo.StoreRepository                   { return r.stores }
func (r *TxReposMock) CompletedOrders() repo.CompletedOrderRepository { return r.completedOrders }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByStoreID(ctx context.Context, storeID int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, storeID, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) SalesStatsByStoreID(ctx context.Context, storeID int64, dayStart time.Time) (repo.StoreSalesStats, error) {
	args := m.Called(ctx, storeID, dayStart)
	stats, _ := args.Get(0).(repo.StoreSalesStats)
	return stats, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CompletedOrderRepoMock struct{ mock.Mock }

func (m *CompletedOrderRepoMock) Upsert(ctx context.Context, record model.CompletedOrder) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *CompletedOrderRepoMock) ListByStoreID(ctx context.Context, storeID int64) ([]model.CompletedOrder, error) {
	args := m.Called(ctx, storeID)
	items, _ := args.Get(0).([]model.CompletedOrder)
	return items, args.Error(1)
}

func validCheckout() usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		CustomerName:    "山田太郎",
		CustomerPhone:   "09012345678",
		CustomerAddress: "東京都千代田区1-1",
		PaymentMethod:   "cash",
	}
}

// =====================
// PlaceOrder tests
// =====================

func TestOrderUsecase_PlaceOrder_MissingCheckoutFields(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewOrderUsecase(tx, new(OrderRepoMock), new(OrderItemRepoMock))

	in := validCheckout()
	in.CustomerPhone = "   "

	_, err := uc.PlaceOrder(context.Background(), 1, in)
	assertHTTPStatus(t, err, 400)

	//Txまで進んでいないこと
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{cartItems: cartRepo, orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)

	uc := usecase.NewOrderUsecase(tx, ordersRepo, new(OrderItemRepoMock))

	_, err := uc.PlaceOrder(ctx, 1, validCheckout())
	assertHTTPStatus(t, err, 400)
	assertErrContains(t, err, "cart is empty")

	//注文は作られない
	ordersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{
		cartItems:  cartRepo,
		products:   productRepo,
		orders:     ordersRepo,
		orderItems: itemsRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//カート：商品5を2個、商品6を1個（どちらも店舗2）
	cartRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 10, UserID: 1, ProductID: 5, Qty: 2},
		{ID: 11, UserID: 1, ProductID: 6, Qty: 1},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, StoreID: 2, Name: "ラーメン", Price: 900}, nil)
	productRepo.On("FindByID", mock.Anything, int64(6)).Return(model.Product{ID: 6, StoreID: 2, Name: "餃子", Price: 400}, nil)

	//合計は注文時点の価格で確定（900*2 + 400*1 = 2200）
	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 1 &&
			o.StoreID == 2 &&
			o.Status == model.OrderStatusPlaced &&
			o.TotalAmount == 2200
	})).Return(int64(100), nil)

	itemsRepo.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		//価格スナップショットが明細に入る
		return items[0].ProductID == 5 && items[0].Qty == 2 && items[0].Price == 900 &&
			items[1].ProductID == 6 && items[1].Qty == 1 && items[1].Price == 400
	})).Return(nil)

	//注文成立でカートが空になる
	cartRepo.On("ClearByUserID", mock.Anything, int64(1)).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Order{
		ID:          100,
		UserID:      1,
		StoreID:     2,
		Status:      model.OrderStatusPlaced,
		TotalAmount: 2200,
	}, nil)

	uc := usecase.NewOrderUsecase(tx, ordersRepo, itemsRepo)

	out, err := uc.PlaceOrder(ctx, 1, validCheckout())
	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.Order.ID)
	assert.Equal(t, int64(2200), out.Order.TotalAmount)
	assert.Equal(t, 2, len(out.Items))

	tx.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_ProductGone_Conflict(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)

	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{cartItems: cartRepo, products: productRepo, orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 10, UserID: 1, ProductID: 5, Qty: 1},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(tx, ordersRepo, new(OrderItemRepoMock))

	_, err := uc.PlaceOrder(ctx, 1, validCheckout())
	assertHTTPStatus(t, err, 409)

	ordersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// List / Detail tests
// =====================

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrder_NotFound(t *testing.T) {
	ctx := context.Background()

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	//注文100はuser 2のもの
	ordersRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, UserID: 2}, nil)

	uc := usecase.NewOrderUsecase(new(TxManagerMock), ordersRepo, itemsRepo)

	_, err := uc.GetMyOrderDetail(ctx, 1, 100)
	assertHTTPStatus(t, err, 404)

	itemsRepo.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_ListMyOrders_WithItems(t *testing.T) {
	ctx := context.Background()

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	ordersRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{ID: 100, UserID: 1, TotalAmount: 2200},
		{ID: 101, UserID: 1, TotalAmount: 400},
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(100)).Return([]model.OrderItem{
		{OrderID: 100, ProductID: 5, Qty: 2, Price: 900},
		{OrderID: 100, ProductID: 6, Qty: 1, Price: 400},
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(101)).Return([]model.OrderItem{
		{OrderID: 101, ProductID: 6, Qty: 1, Price: 400},
	}, nil)

	uc := usecase.NewOrderUsecase(new(TxManagerMock), ordersRepo, itemsRepo)

	out, err := uc.ListMyOrders(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out.Items))
	assert.Equal(t, 2, len(out.Items[0].Items))
	assert.Equal(t, 1, len(out.Items[1].Items))

	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}
