package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"flora/internal/domain/model"
	repo "flora/internal/repository"
)

type AdminOrderUsecase struct {
	tx           repo.TransactionManager
	deliveryRepo repo.DeliveryRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, deliveryRepo repo.DeliveryRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, deliveryRepo: deliveryRepo}
}

type AdminOrderOutput struct {
	OrderOutput
	PhoneNumber string `json:"phone_number,omitempty"`
}

// List は管理画面の注文一覧。未決済とキャンセルは出さない。
// ユーザーのTelegram電話番号を連絡先として添える。
func (u *AdminOrderUsecase) List(ctx context.Context) ([]AdminOrderOutput, error) {
	var outs []AdminOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			ExcludeStatuses: []model.OrderStatus{
				model.OrderStatusPendingPayment,
				model.OrderStatusCanceled,
			},
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		phones := map[int64]string{}
		outs = make([]AdminOrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			var deliveries []model.Delivery
			if o.OrderType == model.OrderTypeSubscription {
				deliveries, err = r.Deliveries().ListByOrderID(ctx, o.ID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

			phone, cached := phones[o.UserID]
			if !cached {
				user, err := r.Users().FindByID(ctx, o.UserID)
				if err == nil {
					phone = user.PhoneNumber
				}
				phones[o.UserID] = phone
			}

			outs = append(outs, AdminOrderOutput{
				OrderOutput: toOrderOutput(o, items, deliveries),
				PhoneNumber: phone,
			})
		}
		return nil
	})
	if err != nil {
		return []AdminOrderOutput{}, err
	}
	return outs, nil
}

type UpdateOrderStatusInput struct {
	Status string
}

// UpdateStatus は注文ステータス変更。語彙チェックのみで遷移の制約は設けない。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		var deliveries []model.Delivery
		if o.OrderType == model.OrderTypeSubscription {
			deliveries, err = r.Deliveries().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = toOrderOutput(o, items, deliveries)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListDeliveries は注文の配送一覧（日付昇順）。
func (u *AdminOrderUsecase) ListDeliveries(ctx context.Context, orderID int64) ([]DeliveryOutput, error) {
	if orderID <= 0 {
		return []DeliveryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deliveries, err := u.deliveryRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return []DeliveryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]DeliveryOutput, 0, len(deliveries))
	for _, d := range deliveries {
		outs = append(outs, DeliveryOutput{
			ID:           d.ID,
			DeliveryDate: d.DeliveryDate.Format(time.RFC3339),
			Status:       string(d.Status),
		})
	}
	return outs, nil
}

type UpdateDeliveryStatusInput struct {
	Status string
}

func (u *AdminOrderUsecase) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, in UpdateDeliveryStatusInput) (DeliveryOutput, error) {
	if deliveryID <= 0 {
		return DeliveryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.DeliveryStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return DeliveryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if err := u.deliveryRepo.UpdateStatus(ctx, deliveryID, newStatus); err != nil {
		if err == repo.ErrNotFound {
			return DeliveryOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return DeliveryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.deliveryOutput(ctx, deliveryID)
}

type UpdateDeliveryDateInput struct {
	DeliveryDate string
}

func (u *AdminOrderUsecase) UpdateDeliveryDate(ctx context.Context, deliveryID int64, in UpdateDeliveryDateInput) (DeliveryOutput, error) {
	if deliveryID <= 0 {
		return DeliveryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	date, err := parseISODate(in.DeliveryDate)
	if err != nil {
		return DeliveryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery_date")
	}

	if err := u.deliveryRepo.UpdateDate(ctx, deliveryID, date); err != nil {
		if err == repo.ErrNotFound {
			return DeliveryOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return DeliveryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.deliveryOutput(ctx, deliveryID)
}

func (u *AdminOrderUsecase) deliveryOutput(ctx context.Context, deliveryID int64) (DeliveryOutput, error) {
	d, err := u.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return DeliveryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return DeliveryOutput{
		ID:           d.ID,
		DeliveryDate: d.DeliveryDate.Format(time.RFC3339),
		Status:       string(d.Status),
	}, nil
}
