// Package pricing はサブスク／単発注文の金額計算。
// 純粋な整数演算のみで、I/Oや丸め誤差の出る浮動小数は使わない。
package pricing

import (
	"errors"
	"fmt"
)

// 既存台帳と金額を一致させるため、丸めは割引額の1回だけ。
// finalTotal を再丸めしてはいけない。
var ErrInvalidArgument = errors.New("invalid argument")

type Quote struct {
	DiscountPercent int64 `json:"discount_percent"`
	OriginalTotal   int64 `json:"original_total"`
	FinalTotal      int64 `json:"final_total"`
	DiscountAmount  int64 `json:"discount_amount"`
	TotalDeliveries int64 `json:"total_deliveries"`
}

// DiscountPercent は配送総数に対する段階割引率。高い閾値が勝つ。
func DiscountPercent(totalDeliveries int64) int64 {
	switch {
	case totalDeliveries >= 12:
		return 15
	case totalDeliveries >= 8:
		return 10
	case totalDeliveries >= 4:
		return 5
	default:
		return 0
	}
}

// Subscription はサブスクの請求総額を計算する。
// 0や負の入力は黙って丸めずエラーにする（表示額と請求額がずれるため）。
func Subscription(deliveriesPerMonth, subscriptionMonths, pricePerDelivery int64) (Quote, error) {
	if deliveriesPerMonth < 1 {
		return Quote{}, fmt.Errorf("%w: deliveries per month must be >= 1", ErrInvalidArgument)
	}
	if subscriptionMonths < 1 {
		return Quote{}, fmt.Errorf("%w: subscription months must be >= 1", ErrInvalidArgument)
	}
	if pricePerDelivery < 0 {
		return Quote{}, fmt.Errorf("%w: price per delivery must be >= 0", ErrInvalidArgument)
	}

	totalDeliveries := deliveriesPerMonth * subscriptionMonths
	percent := DiscountPercent(totalDeliveries)
	originalTotal := pricePerDelivery * totalDeliveries

	// 四捨五入（half-up）を割引額に1回だけ適用
	discountAmount := (originalTotal*percent + 50) / 100
	finalTotal := originalTotal - discountAmount

	return Quote{
		DiscountPercent: percent,
		OriginalTotal:   originalTotal,
		FinalTotal:      finalTotal,
		DiscountAmount:  discountAmount,
		TotalDeliveries: totalDeliveries,
	}, nil
}

// OneTime は単発注文。割引計算は通さず1回分の価格そのまま。
func OneTime(pricePerDelivery int64) (Quote, error) {
	if pricePerDelivery < 0 {
		return Quote{}, fmt.Errorf("%w: price per delivery must be >= 0", ErrInvalidArgument)
	}
	return Quote{
		OriginalTotal:   pricePerDelivery,
		FinalTotal:      pricePerDelivery,
		TotalDeliveries: 1,
	}, nil
}
