package model

import "time"

// 1セラーにつき店舗は1つ（作成時にチェック）
type Store struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    int64  `gorm:"not null;uniqueIndex" json:"seller_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//問い合わせ先（注文カードの連絡ボタンに使う）
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	MessengerLink string `gorm:"type:varchar(255)" json:"messenger_link"`

	//falseの店舗は公開一覧・メニューから見えない
	IsVisible bool `gorm:"not null;default:true" json:"is_visible"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
