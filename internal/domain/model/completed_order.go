package model

import "time"

// completedへ遷移した注文の台帳。
// order_id一意のupsertで、同じ注文から2行できることはない。
type CompletedOrder struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;uniqueIndex" json:"order_id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	StoreID     int64     `gorm:"not null;index" json:"store_id"`
	TotalAmount int64     `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
