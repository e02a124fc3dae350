package model

import "time"

// カート行
// (user_id, product_id)につき1行。加算はrepositoryのUpsertで行う。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID int64     `gorm:"not null;index:idx_cart_user_product,unique" json:"product_id"`
	Qty       int64     `gorm:"not null" json:"qty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
