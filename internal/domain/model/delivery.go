package model

import "time"

type DeliveryStatus string

const (
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCanceled  DeliveryStatus = "canceled"
)

func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCanceled
}

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusScheduled, DeliveryStatusDelivered, DeliveryStatusCanceled:
		return true
	}
	return false
}

// サブスク注文1回分の配送。
// 単発注文は配送を持たず、注文自身のstatusが正。
type Delivery struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64          `gorm:"not null;index" json:"order_id"`
	DeliveryDate time.Time      `gorm:"not null" json:"delivery_date"`
	Status       DeliveryStatus `gorm:"type:varchar(20);not null" json:"status"`
}
