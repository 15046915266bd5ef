package model_test

import (
	"testing"

	"flora/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// =====================
// ステータス語彙
// =====================

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []model.OrderStatus{
		model.OrderStatusPendingPayment,
		model.OrderStatusCreated,
		model.OrderStatusAssembling,
		model.OrderStatusDelivered,
		model.OrderStatusCanceled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, model.OrderStatus("shipped").Valid())
	assert.False(t, model.OrderStatus("").Valid())
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, model.OrderStatusDelivered.Terminal())
	assert.True(t, model.OrderStatusCanceled.Terminal())
	assert.False(t, model.OrderStatusCreated.Terminal())
	assert.False(t, model.OrderStatusAssembling.Terminal())
	assert.False(t, model.OrderStatusPendingPayment.Terminal())
}

func TestDeliveryStatus_Valid(t *testing.T) {
	assert.True(t, model.DeliveryStatusScheduled.Valid())
	assert.True(t, model.DeliveryStatusDelivered.Valid())
	assert.True(t, model.DeliveryStatusCanceled.Valid())
	assert.False(t, model.DeliveryStatus("pending").Valid())
}

// =====================
// サブスク状態の導出
// =====================

func TestSubscriptionStateOf_AnyNonTerminalIsActive(t *testing.T) {
	deliveries := []model.Delivery{
		{Status: model.DeliveryStatusDelivered},
		{Status: model.DeliveryStatusScheduled},
	}
	assert.Equal(t, model.SubscriptionActive, model.SubscriptionStateOf(deliveries))
}

func TestSubscriptionStateOf_AllTerminalIsInactive(t *testing.T) {
	deliveries := []model.Delivery{
		{Status: model.DeliveryStatusDelivered},
		{Status: model.DeliveryStatusCanceled},
	}
	assert.Equal(t, model.SubscriptionInactive, model.SubscriptionStateOf(deliveries))
}

func TestSubscriptionStateOf_NoDeliveriesIsActive(t *testing.T) {
	// 配送未作成＝初回スケジュール待ち
	assert.Equal(t, model.SubscriptionActive, model.SubscriptionStateOf(nil))
}

// =====================
// active / history 分類
// =====================

func TestBucketOf_Subscription(t *testing.T) {
	o := model.Order{OrderType: model.OrderTypeSubscription, Status: model.OrderStatusCreated}

	active := []model.Delivery{{Status: model.DeliveryStatusScheduled}}
	done := []model.Delivery{{Status: model.DeliveryStatusDelivered}, {Status: model.DeliveryStatusCanceled}}

	assert.Equal(t, model.BucketActive, model.BucketOf(o, active))
	assert.Equal(t, model.BucketHistory, model.BucketOf(o, done))
}

func TestBucketOf_SubscriptionIgnoresOrderStatus(t *testing.T) {
	// サブスクの分類は配送側だけで決まる
	o := model.Order{OrderType: model.OrderTypeSubscription, Status: model.OrderStatusDelivered}
	active := []model.Delivery{{Status: model.DeliveryStatusScheduled}}

	assert.Equal(t, model.BucketActive, model.BucketOf(o, active))
}

func TestBucketOf_OneTime(t *testing.T) {
	assert.Equal(t, model.BucketActive, model.BucketOf(
		model.Order{OrderType: model.OrderTypeOneTime, Status: model.OrderStatusAssembling}, nil))
	assert.Equal(t, model.BucketHistory, model.BucketOf(
		model.Order{OrderType: model.OrderTypeOneTime, Status: model.OrderStatusDelivered}, nil))
	assert.Equal(t, model.BucketHistory, model.BucketOf(
		model.Order{OrderType: model.OrderTypeOneTime, Status: model.OrderStatusCanceled}, nil))
}
