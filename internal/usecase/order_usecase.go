package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// OrderUsecase は買い手側の注文処理。
type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

type PlaceOrderInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
	Price     int64  `json:"price"`
}

type OrderOutput struct {
	Order model.Order       `json:"order"`
	Items []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
}

// PlaceOrder はカート内容から注文を作る。
// カート読取り→注文作成→明細作成→カート空化を1トランザクションで行う。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 受け渡しに必要な項目はすべて必須
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)

	if in.CustomerName == "" || in.CustomerPhone == "" || in.CustomerAddress == "" || in.PaymentMethod == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer_name, customer_phone, customer_address and payment_method are required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		// 商品を取り直して、価格スナップショットと合計を確定する
		var storeID int64
		var total int64
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		names := make([]string, 0, len(cartItems))

		for _, it := range cartItems {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				// 注文前に商品が消えた場合は注文自体を弾く
				return NewHTTPError(http.StatusConflict, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if storeID == 0 {
				storeID = p.StoreID
			} else if storeID != p.StoreID {
				return NewHTTPError(http.StatusConflict, "cart has items from multiple stores")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: p.ID,
				Qty:       it.Qty,
				Price:     p.Price,
			})
			names = append(names, p.Name)
			total += p.Price * it.Qty
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			StoreID:         storeID,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			PaymentMethod:   in.PaymentMethod,
			Notes:           in.Notes,
			Status:          model.OrderStatusPlaced,
			TotalAmount:     total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 注文成立でカートを空にする（同一Tx内）
		if err := r.CartItems().ClearByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		itemsOut := make([]OrderItemOutput, 0, len(orderItems))
		for i, oi := range orderItems {
			itemsOut = append(itemsOut, OrderItemOutput{
				ProductID: oi.ProductID,
				Name:      names[i],
				Qty:       oi.Qty,
				Price:     oi.Price,
			})
		}

		out = OrderOutput{Order: order, Items: itemsOut}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out, err := u.toOrderOutput(ctx, o)
		if err != nil {
			return OrderListOutput{}, err
		}
		items = append(items, out)
	}

	return OrderListOutput{Items: items}, nil
}

// GetMyOrderDetail は注文詳細。他人の注文は404にする。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.toOrderOutput(ctx, order)
}

// 明細を付けてOrderOutputを作る
func (u *OrderUsecase) toOrderOutput(ctx context.Context, order model.Order) (OrderOutput, error) {
	orderItems, err := u.orderItemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]OrderItemOutput, 0, len(orderItems))
	for _, oi := range orderItems {
		items = append(items, OrderItemOutput{
			ProductID: oi.ProductID,
			Qty:       oi.Qty,
			Price:     oi.Price,
		})
	}

	return OrderOutput{Order: order, Items: items}, nil
}
