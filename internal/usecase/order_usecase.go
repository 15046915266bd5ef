package usecase

import (
	"context"
	"net/http"
	"time"

	"flora/internal/domain/contact"
	"flora/internal/domain/model"
	"flora/internal/domain/pricing"
	"flora/internal/notify"
	repo "flora/internal/repository"

	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	notifier notify.Publisher
	logger   *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, notifier notify.Publisher, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, notifier: notifier, logger: logger}
}

type CheckoutInput struct {
	FullName string
	Phone    string
	Email    string
	Comment  string
	Addons   pricing.Addons
}

type OrderItemOutput struct {
	ProductID          int64  `json:"product_id"`
	Title              string `json:"title"`
	Price              int64  `json:"price"`
	DeliveriesPerMonth int64  `json:"deliveries_per_month"`
	SubscriptionMonths int64  `json:"subscription_months"`
	DeliveryDate       string `json:"delivery_date,omitempty"`
}

type DeliveryOutput struct {
	ID           int64  `json:"id"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
}

type OrderOutput struct {
	ID                 int64             `json:"id"`
	UserID             int64             `json:"user_id"`
	Status             string            `json:"status"`
	OrderType          string            `json:"order_type"`
	TotalAmount        int64             `json:"total_amount"`
	FullName           string            `json:"fio"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email,omitempty"`
	Comment            string            `json:"comment,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	Items              []OrderItemOutput `json:"items"`
	Deliveries         []DeliveryOutput  `json:"deliveries"`
	SubscriptionStatus string            `json:"subscription_status,omitempty"`
	Bucket             string            `json:"bucket"`
}

// Checkout はカート全体を1注文として確定する。
// 受取人検証→合計算出→合成配送行の追加→注文＋配送スケジュール生成→カートクリア、
// までを1トランザクションで行い、成功後に通知をpublishする。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	c := contact.Contact{
		FullName: in.FullName,
		Phone:    in.Phone,
		Email:    in.Email,
		Comment:  in.Comment,
	}
	if err := c.Validate(); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// 保存・通知用はE.164へ正規化（検証済みなので必ず揃う）
	phone, ok := contact.E164(in.Phone)
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, contact.ErrPhoneIncomplete.Error())
	}

	var out OrderOutput
	var telegramID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		telegramID = user.TelegramID

		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		orderType := orderTypeOf(cartItems)

		lines := make([]pricing.Line, 0, len(cartItems))
		orderItems := make([]model.OrderItem, 0, len(cartItems)+1)
		now := time.Now()
		for _, ci := range cartItems {
			lines = append(lines, pricing.Line{
				Price:              ci.Price,
				DeliveriesPerMonth: ci.DeliveriesPerMonth,
				SubscriptionMonths: ci.SubscriptionMonths,
			})
			orderItems = append(orderItems, model.OrderItem{
				ProductID:          ci.ProductID,
				TitleSnapshot:      ci.Title,
				PriceSnapshot:      ci.Price,
				DeliveriesPerMonth: ci.DeliveriesPerMonth,
				SubscriptionMonths: ci.SubscriptionMonths,
				DeliveryDate:       ci.DeliveryDate,
				CreatedAt:          now,
			})
		}

		totals := pricing.CartTotal(lines, in.Addons)

		// 配送料は永続カートには置かず、確定時に合成行として積む
		if totals.DeliveryPrice > 0 {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:     0,
				TitleSnapshot: pricing.DeliveryLineTitle,
				PriceSnapshot: totals.DeliveryPrice,
				CreatedAt:     now,
			})
		}

		order, err := r.Orders().Create(ctx, model.Order{
			UserID:      userID,
			Status:      model.OrderStatusPendingPayment,
			OrderType:   orderType,
			TotalAmount: totals.Total,
			FullName:    in.FullName,
			Phone:       phone,
			Email:       in.Email,
			Comment:     in.Comment,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// サブスクは配送スケジュールを即時生成
		var deliveries []model.Delivery
		if orderType == model.OrderTypeSubscription {
			deliveries = buildDeliverySchedule(cartItems, order.CreatedAt)
			if err := r.Deliveries().CreateBulk(ctx, order.ID, deliveries); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		// 再注文防止
		if err := r.CartItems().DeleteByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, orderItems, deliveries)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// 通知失敗で注文は巻き戻さない
	if err := u.notifier.OrderCreated(ctx, telegramID, out.ID, out.TotalAmount); err != nil {
		u.logger.Warn("order notification publish failed",
			zap.Int64("order_id", out.ID), zap.Error(err))
	}

	return out, nil
}

// ListMyOrders はユーザーの注文一覧。
// 配送ステータスは管理側で随時変わるため、分類は読み取りのたびに再計算する。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
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
			outs = append(outs, toOrderOutput(o, items, deliveries))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// カートにサブスク要素が1つでもあれば注文全体がサブスク扱い
func orderTypeOf(items []model.CartItem) model.OrderType {
	for _, it := range items {
		if it.Mode == model.OrderTypeSubscription ||
			it.SubscriptionMonths > 1 || it.DeliveriesPerMonth > 1 {
			return model.OrderTypeSubscription
		}
	}
	return model.OrderTypeOneTime
}

// buildDeliverySchedule は最初のサブスク明細から配送日程を起こす。
// i回目の配送は作成日 + 30*i/deliveriesPerMonth 日後。
func buildDeliverySchedule(items []model.CartItem, createdAt time.Time) []model.Delivery {
	var sub *model.CartItem
	for i := range items {
		if items[i].Mode == model.OrderTypeSubscription ||
			items[i].SubscriptionMonths > 1 || items[i].DeliveriesPerMonth > 1 {
			sub = &items[i]
			break
		}
	}
	if sub == nil {
		return nil
	}

	dpm := sub.DeliveriesPerMonth
	months := sub.SubscriptionMonths
	if dpm < 1 {
		dpm = 1
	}
	if months < 1 {
		months = 1
	}

	total := dpm * months
	deliveries := make([]model.Delivery, 0, total)
	for i := int64(0); i < total; i++ {
		deliveries = append(deliveries, model.Delivery{
			DeliveryDate: createdAt.AddDate(0, 0, int(30*i/dpm)),
			Status:       model.DeliveryStatusScheduled,
		})
	}
	return deliveries
}

func toOrderOutput(o model.Order, items []model.OrderItem, deliveries []model.Delivery) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		oi := OrderItemOutput{
			ProductID:          it.ProductID,
			Title:              it.TitleSnapshot,
			Price:              it.PriceSnapshot,
			DeliveriesPerMonth: it.DeliveriesPerMonth,
			SubscriptionMonths: it.SubscriptionMonths,
		}
		if it.DeliveryDate != nil {
			oi.DeliveryDate = it.DeliveryDate.Format(time.RFC3339)
		}
		outItems = append(outItems, oi)
	}

	outDeliveries := make([]DeliveryOutput, 0, len(deliveries))
	for _, d := range deliveries {
		outDeliveries = append(outDeliveries, DeliveryOutput{
			ID:           d.ID,
			DeliveryDate: d.DeliveryDate.Format(time.RFC3339),
			Status:       string(d.Status),
		})
	}

	out := OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		OrderType:   string(o.OrderType),
		TotalAmount: o.TotalAmount,
		FullName:    o.FullName,
		Phone:       o.Phone,
		Email:       o.Email,
		Comment:     o.Comment,
		CreatedAt:   o.CreatedAt,
		Items:       outItems,
		Deliveries:  outDeliveries,
		Bucket:      string(model.BucketOf(o, deliveries)),
	}
	if o.OrderType == model.OrderTypeSubscription {
		out.SubscriptionStatus = string(model.SubscriptionStateOf(deliveries))
	}
	return out
}
