package repository

import (
	"context"
	"time"

	"flora/internal/domain/model"
)

type AdminOrderListFilter struct {
	// 管理一覧から除外するステータス（未決済・キャンセル）
	ExcludeStatuses []model.OrderStatus
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type DeliveryRepository interface {
	CreateBulk(ctx context.Context, orderID int64, deliveries []model.Delivery) error
	// 日付昇順
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Delivery, error)
	FindByID(ctx context.Context, deliveryID int64) (model.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error
	UpdateDate(ctx context.Context, deliveryID int64, date time.Time) error
}
