package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivery  OrderStatus = "delivery"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 前進は1段ずつ。cancelledは非終端ならどこからでも入れる。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPlaced:    {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivery, OrderStatusCancelled},
	OrderStatusDelivery:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// 既知のステータスか
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// completed / cancelled は以後変更不可
func (s OrderStatus) IsTerminal() bool {
	next, ok := orderTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo は遷移表にある遷移だけを許可する
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == to {
			return true
		}
	}
	return false
}

// total_amountは作成時に確定し、以後変更しない
type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64       `gorm:"not null;index" json:"user_id"`
	StoreID         int64       `gorm:"not null;index" json:"store_id"`
	CustomerName    string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"type:varchar(30);not null" json:"customer_phone"`
	CustomerAddress string      `gorm:"type:varchar(512);not null" json:"customer_address"`
	PaymentMethod   string      `gorm:"type:varchar(50);not null" json:"payment_method"`
	Notes           string      `gorm:"type:text" json:"notes"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
