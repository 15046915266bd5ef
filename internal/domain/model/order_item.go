package model

import "time"

// 注文明細（確定時点のスナップショット）。
// 配送料の合成行は ProductID=0 で表す。
type OrderItem struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64      `gorm:"not null;index" json:"order_id"`
	ProductID          int64      `gorm:"index" json:"product_id"`
	TitleSnapshot      string     `gorm:"type:varchar(255);not null" json:"title"`
	PriceSnapshot      int64      `gorm:"not null" json:"price"`
	DeliveriesPerMonth int64      `gorm:"not null;default:1" json:"deliveries_per_month"`
	SubscriptionMonths int64      `gorm:"not null;default:1" json:"subscription_months"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
