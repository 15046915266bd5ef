package model

import "time"

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusAssembling     OrderStatus = "assembling"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCanceled       OrderStatus = "canceled"
)

// Terminal は注文が完了状態（delivered/canceled）かどうか。
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusCreated, OrderStatusAssembling,
		OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

type OrderType string

const (
	OrderTypeSubscription OrderType = "subscription"
	OrderTypeOneTime      OrderType = "one-time"
)

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderType   OrderType   `gorm:"type:varchar(20);not null" json:"order_type"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	FullName    string      `gorm:"type:varchar(255);column:fio" json:"fio"`
	Phone       string      `gorm:"type:varchar(20)" json:"phone"`
	Email       string      `gorm:"type:varchar(255)" json:"email,omitempty"`
	Comment     string      `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type SubscriptionState string

const (
	SubscriptionActive   SubscriptionState = "active"
	SubscriptionInactive SubscriptionState = "inactive"
)

type OrderBucket string

const (
	BucketActive  OrderBucket = "active"
	BucketHistory OrderBucket = "history"
)

// SubscriptionStateOf は配送一覧からサブスクの状態を導出する。
// 配送が未作成のサブスクは初回スケジュール待ちなので active 扱い。
func SubscriptionStateOf(deliveries []Delivery) SubscriptionState {
	if len(deliveries) == 0 {
		return SubscriptionActive
	}
	for _, d := range deliveries {
		if !d.Status.Terminal() {
			return SubscriptionActive
		}
	}
	return SubscriptionInactive
}

// BucketOf は表示用の分類（active / history）。
// 配送ステータスは注文後も変わるので、毎回再計算して保存しない。
func BucketOf(o Order, deliveries []Delivery) OrderBucket {
	if o.OrderType == OrderTypeSubscription {
		if SubscriptionStateOf(deliveries) == SubscriptionActive {
			return BucketActive
		}
		return BucketHistory
	}
	if o.Status.Terminal() {
		return BucketHistory
	}
	return BucketActive
}
