package usecase

import (
	"context"
	"net/http"
	"time"

	"flora/internal/domain/model"
	"flora/internal/domain/pricing"
	repo "flora/internal/repository"

	"gorm.io/datatypes"
)

// CartUsecase はカートの業務ロジック。
// 価格はカート追加時に確定し、以後は再計算しない。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(cartItemRepo repo.CartItemRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartItemRepo: cartItemRepo, productRepo: productRepo}
}

type AddCartInput struct {
	ProductID          int64
	DeliveriesPerMonth int64
	SubscriptionMonths int64
	Mode               string
	DeliveryDate       string // ISO日付、単発のみ
}

type CartItemResponse struct {
	ID                 int64    `json:"id"`
	ProductID          int64    `json:"product_id"`
	Title              string   `json:"title"`
	Photos             []string `json:"photos"`
	Price              int64    `json:"price"`
	DeliveriesPerMonth int64    `json:"deliveries_per_month"`
	SubscriptionMonths int64    `json:"subscription_months"`
	Mode               string   `json:"mode"`
	DeliveryDate       string   `json:"delivery_date,omitempty"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	ItemsPrice    int64              `json:"items_price"`
	DeliveryPrice int64              `json:"delivery_price"`
	Total         int64              `json:"total"`
}

// AddItem はカート追加。サブスクは割引計算を通した確定額、単発は1回分の価格を保存する。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	mode := model.OrderType(in.Mode)
	switch mode {
	case model.OrderTypeSubscription, model.OrderTypeOneTime:
	default:
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid mode")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 未指定（0）は1にする。負数は契約違反なので弾く。
	dpm := in.DeliveriesPerMonth
	months := in.SubscriptionMonths
	if dpm == 0 {
		dpm = 1
	}
	if months == 0 {
		months = 1
	}
	if dpm < 1 || months < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if dpm > p.MaxDeliveries {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "deliveries_per_month exceeds product limit")
	}
	if months > p.MaxMonths {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "subscription_months exceeds product limit")
	}

	item := model.CartItem{
		UserID:             userID,
		ProductID:          p.ID,
		Mode:               mode,
		Title:              p.Title,
		Photos:             datatypes.NewJSONSlice([]string(p.Photos)),
		DeliveriesPerMonth: dpm,
		SubscriptionMonths: months,
	}

	if mode == model.OrderTypeOneTime {
		// 単発は配送日必須、割引なし
		if in.DeliveryDate == "" {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "delivery date required for one-time order")
		}
		date, err := parseISODate(in.DeliveryDate)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid delivery date")
		}
		q, err := pricing.OneTime(p.PricePerDelivery)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		item.DeliveryDate = &date
		item.DeliveriesPerMonth = 1
		item.SubscriptionMonths = 1
		item.Price = q.FinalTotal
	} else {
		q, err := pricing.Subscription(dpm, months, p.PricePerDelivery)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		item.Price = q.FinalTotal
	}

	if _, err := u.cartItemRepo.Create(ctx, item); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他人の明細は「存在しない扱い」
	if item.UserID != userID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.cartItemRepo.DeleteByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		r := CartItemResponse{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			Title:              it.Title,
			Photos:             []string(it.Photos),
			Price:              it.Price,
			DeliveriesPerMonth: it.DeliveriesPerMonth,
			SubscriptionMonths: it.SubscriptionMonths,
			Mode:               string(it.Mode),
		}
		if it.DeliveryDate != nil {
			r.DeliveryDate = it.DeliveryDate.Format(time.RFC3339)
		}
		respItems = append(respItems, r)

		lines = append(lines, pricing.Line{
			Price:              it.Price,
			DeliveriesPerMonth: it.DeliveriesPerMonth,
			SubscriptionMonths: it.SubscriptionMonths,
		})
	}

	totals := pricing.CartTotal(lines, pricing.Addons{})
	return CartResponse{
		Items:         respItems,
		ItemsPrice:    totals.ItemsPrice,
		DeliveryPrice: totals.DeliveryPrice,
		Total:         totals.Total,
	}, nil
}

// ISO-8601の日付または日時を受ける
func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
