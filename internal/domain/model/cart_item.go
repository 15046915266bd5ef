package model

import (
	"time"

	"gorm.io/datatypes"
)

// カートの明細。追加時点の価格・タイトルを必ずスナップショット保存。
// deliveries_per_month / subscription_months は0を許さない（デフォルト1）。
type CartItem struct {
	ID                 int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             int64                       `gorm:"not null;index" json:"user_id"`
	ProductID          int64                       `gorm:"not null;index" json:"product_id"`
	DeliveriesPerMonth int64                       `gorm:"not null;default:1" json:"deliveries_per_month"`
	SubscriptionMonths int64                       `gorm:"not null;default:1" json:"subscription_months"`
	Price              int64                       `gorm:"not null" json:"price"`
	Mode               OrderType                   `gorm:"type:varchar(20);not null" json:"mode"`
	DeliveryDate       *time.Time                  `json:"delivery_date,omitempty"`
	Title              string                      `gorm:"type:varchar(255);not null" json:"title"`
	Photos             datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photos"`
	CreatedAt          time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
