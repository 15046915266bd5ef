package pricing_test

import (
	"testing"

	"flora/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
)

// =====================
// 割引率の段階
// =====================

func TestDiscountPercent_Tiers(t *testing.T) {
	cases := []struct {
		deliveries int64
		percent    int64
	}{
		{0, 0},
		{1, 0},
		{3, 0},
		{4, 5},
		{7, 5},
		{8, 10},
		{11, 10},
		{12, 15},
		{24, 15},
		{100, 15},
	}

	for _, c := range cases {
		assert.Equal(t, c.percent, pricing.DiscountPercent(c.deliveries), "deliveries=%d", c.deliveries)
	}
}

// =====================
// サブスク計算
// =====================

func TestSubscription_TwelveDeliveries(t *testing.T) {
	// 月2回×6ヶ月×1000 → 12配送で15%割引
	q, err := pricing.Subscription(2, 6, 1000)
	assert.NoError(t, err)

	assert.Equal(t, int64(12), q.TotalDeliveries)
	assert.Equal(t, int64(15), q.DiscountPercent)
	assert.Equal(t, int64(12000), q.OriginalTotal)
	assert.Equal(t, int64(1800), q.DiscountAmount)
	assert.Equal(t, int64(10200), q.FinalTotal)
}

func TestSubscription_HalfUpRounding(t *testing.T) {
	// 333×7=2331、5%割引=116.55 → 割引額は四捨五入で117
	q, err := pricing.Subscription(1, 7, 333)
	assert.NoError(t, err)

	assert.Equal(t, int64(2331), q.OriginalTotal)
	assert.Equal(t, int64(117), q.DiscountAmount)
	assert.Equal(t, int64(2214), q.FinalTotal)
	// 再丸めしないので差分は常に一致する
	assert.Equal(t, q.OriginalTotal-q.DiscountAmount, q.FinalTotal)
}

func TestSubscription_NoDiscountBelowThreshold(t *testing.T) {
	q, err := pricing.Subscription(1, 3, 2500)
	assert.NoError(t, err)

	assert.Equal(t, int64(0), q.DiscountPercent)
	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(7500), q.FinalTotal)
}

func TestSubscription_ZeroPrice(t *testing.T) {
	q, err := pricing.Subscription(2, 6, 0)
	assert.NoError(t, err)

	assert.Equal(t, int64(0), q.OriginalTotal)
	assert.Equal(t, int64(0), q.FinalTotal)
}

func TestSubscription_InvalidArguments(t *testing.T) {
	_, err := pricing.Subscription(0, 6, 1000)
	assert.ErrorIs(t, err, pricing.ErrInvalidArgument)

	_, err = pricing.Subscription(2, 0, 1000)
	assert.ErrorIs(t, err, pricing.ErrInvalidArgument)

	_, err = pricing.Subscription(2, 6, -1)
	assert.ErrorIs(t, err, pricing.ErrInvalidArgument)
}

// =====================
// 単発注文
// =====================

func TestOneTime_NoDiscount(t *testing.T) {
	q, err := pricing.OneTime(4500)
	assert.NoError(t, err)

	assert.Equal(t, int64(0), q.DiscountPercent)
	assert.Equal(t, int64(4500), q.OriginalTotal)
	assert.Equal(t, int64(4500), q.FinalTotal)
	assert.Equal(t, int64(1), q.TotalDeliveries)
}

func TestOneTime_NegativePrice(t *testing.T) {
	_, err := pricing.OneTime(-1)
	assert.ErrorIs(t, err, pricing.ErrInvalidArgument)
}
