package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"flora/internal/domain/model"
	repo "flora/internal/repository"
	"flora/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// 管理一覧
// =====================

func TestAdminOrderUsecase_List_ExcludesPendingAndCanceled(t *testing.T) {
	r := newTxReposMock()
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: r}, new(DeliveryRepoMock))

	wantFilter := repo.AdminOrderListFilter{
		ExcludeStatuses: []model.OrderStatus{
			model.OrderStatusPendingPayment,
			model.OrderStatusCanceled,
		},
	}

	orders := []model.Order{
		{ID: 1, UserID: 10, OrderType: model.OrderTypeOneTime, Status: model.OrderStatusCreated},
		{ID: 2, UserID: 10, OrderType: model.OrderTypeSubscription, Status: model.OrderStatusAssembling},
	}

	r.orders.On("ListAdmin", mock.Anything, wantFilter).Return(orders, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{}, nil)
	r.deliveries.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.Delivery{
		{ID: 5, OrderID: 2, Status: model.DeliveryStatusScheduled, DeliveryDate: time.Now()},
	}, nil)

	// 同一ユーザーの電話番号は1回だけ引く
	r.users.On("FindByID", mock.Anything, int64(10)).
		Return(model.User{ID: 10, PhoneNumber: "+79161234567"}, nil).Once()

	outs, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))

	assert.Equal(t, "+79161234567", outs[0].PhoneNumber)
	assert.Equal(t, "+79161234567", outs[1].PhoneNumber)
	assert.Equal(t, "active", outs[1].SubscriptionStatus)

	r.orders.AssertExpectations(t)
	r.users.AssertExpectations(t)
}

// =====================
// 注文ステータス
// =====================

func TestAdminOrderUsecase_UpdateStatus_InvalidVocabulary(t *testing.T) {
	tx := &txManagerMock{repos: newTxReposMock()}
	uc := usecase.NewAdminOrderUsecase(tx, new(DeliveryRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")
	assert.Equal(t, 0, tx.called)
}

func TestAdminOrderUsecase_UpdateStatus_AnyTransitionAllowed(t *testing.T) {
	r := newTxReposMock()
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: r}, new(DeliveryRepoMock))

	// delivered からの差し戻しも許す（遷移制約なし）
	r.orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusAssembling).Return(nil)
	r.orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, OrderType: model.OrderTypeOneTime, Status: model.OrderStatusAssembling,
	}, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	out, err := uc.UpdateStatus(context.Background(), 1, usecase.UpdateOrderStatusInput{Status: "assembling"})
	assert.NoError(t, err)
	assert.Equal(t, "assembling", out.Status)

	r.orders.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	r := newTxReposMock()
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: r}, new(DeliveryRepoMock))

	r.orders.On("UpdateStatus", mock.Anything, int64(99), model.OrderStatusCreated).Return(repo.ErrNotFound)

	_, err := uc.UpdateStatus(context.Background(), 99, usecase.UpdateOrderStatusInput{Status: "created"})
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

// =====================
// 配送
// =====================

func TestAdminOrderUsecase_ListDeliveries_SortedOutput(t *testing.T) {
	deliveryRepo := new(DeliveryRepoMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: newTxReposMock()}, deliveryRepo)

	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	deliveryRepo.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.Delivery{
		{ID: 1, OrderID: 1, DeliveryDate: d1, Status: model.DeliveryStatusDelivered},
		{ID: 2, OrderID: 1, DeliveryDate: d2, Status: model.DeliveryStatusScheduled},
	}, nil)

	outs, err := uc.ListDeliveries(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))
	assert.Equal(t, d1.Format(time.RFC3339), outs[0].DeliveryDate)
	assert.Equal(t, "delivered", outs[0].Status)
}

func TestAdminOrderUsecase_UpdateDeliveryStatus(t *testing.T) {
	deliveryRepo := new(DeliveryRepoMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: newTxReposMock()}, deliveryRepo)

	deliveryRepo.On("UpdateStatus", mock.Anything, int64(5), model.DeliveryStatusDelivered).Return(nil)
	deliveryRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Delivery{
		ID: 5, Status: model.DeliveryStatusDelivered, DeliveryDate: time.Now(),
	}, nil)

	out, err := uc.UpdateDeliveryStatus(context.Background(), 5, usecase.UpdateDeliveryStatusInput{Status: "delivered"})
	assert.NoError(t, err)
	assert.Equal(t, "delivered", out.Status)
}

func TestAdminOrderUsecase_UpdateDeliveryStatus_InvalidVocabulary(t *testing.T) {
	deliveryRepo := new(DeliveryRepoMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: newTxReposMock()}, deliveryRepo)

	_, err := uc.UpdateDeliveryStatus(context.Background(), 5, usecase.UpdateDeliveryStatusInput{Status: "paused"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")

	deliveryRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateDeliveryDate(t *testing.T) {
	deliveryRepo := new(DeliveryRepoMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: newTxReposMock()}, deliveryRepo)

	want := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	deliveryRepo.On("UpdateDate", mock.Anything, int64(5), want).Return(nil)
	deliveryRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Delivery{
		ID: 5, Status: model.DeliveryStatusScheduled, DeliveryDate: want,
	}, nil)

	out, err := uc.UpdateDeliveryDate(context.Background(), 5, usecase.UpdateDeliveryDateInput{DeliveryDate: "2025-04-02"})
	assert.NoError(t, err)
	assert.Equal(t, want.Format(time.RFC3339), out.DeliveryDate)
}

func TestAdminOrderUsecase_UpdateDeliveryDate_InvalidDate(t *testing.T) {
	deliveryRepo := new(DeliveryRepoMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: newTxReposMock()}, deliveryRepo)

	_, err := uc.UpdateDeliveryDate(context.Background(), 5, usecase.UpdateDeliveryDateInput{DeliveryDate: "02.04.2025"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid delivery_date")
}

func TestAdminOrderUsecase_UpdateDeliveryStatus_NotFound(t *testing.T) {
	deliveryRepo := new(DeliveryRepoMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerMock{repos: newTxReposMock()}, deliveryRepo)

	deliveryRepo.On("UpdateStatus", mock.Anything, int64(99), model.DeliveryStatusCanceled).Return(repo.ErrNotFound)

	_, err := uc.UpdateDeliveryStatus(context.Background(), 99, usecase.UpdateDeliveryStatusInput{Status: "canceled"})
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}
