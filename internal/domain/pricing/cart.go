package pricing

const (
	// 配送1回あたりの固定料金（モスクワMKAD圏内）
	DeliveryFeePerOccurrence int64 = 500
	// 追加オプション（花瓶・剪定ばさみ）1点あたり
	AddonPrice int64 = 500

	// 合成配送行のタイトル
	DeliveryLineTitle = "Доставка (Москва в пределах МКАД)"
)

// カート1行分。Price は追加時点で確定した金額（ここでは再計算しない）。
type Line struct {
	Price              int64
	DeliveriesPerMonth int64
	SubscriptionMonths int64
}

// 追加オプション。UI上は現在無効のため拡張ポイントとして残す。
type Addons struct {
	Vase   bool
	Pruner bool
}

type Totals struct {
	ItemsPrice    int64 `json:"items_price"`
	DeliveryPrice int64 `json:"delivery_price"`
	AddonsPrice   int64 `json:"addons_price"`
	Total         int64 `json:"total"`
}

// DeliveryFee は1行分の配送料。件数・月数の欠損（0以下）は1扱い。
func DeliveryFee(deliveriesPerMonth, subscriptionMonths int64) int64 {
	if deliveriesPerMonth < 1 {
		deliveriesPerMonth = 1
	}
	if subscriptionMonths < 1 {
		subscriptionMonths = 1
	}
	return DeliveryFeePerOccurrence * deliveriesPerMonth * subscriptionMonths
}

// CartTotal は注文確定前の合計を出す。
// itemsPrice は確定済み価格の単純合計、配送料は行ごとに加算する。
func CartTotal(lines []Line, addons Addons) Totals {
	var t Totals
	for _, l := range lines {
		t.ItemsPrice += l.Price
		t.DeliveryPrice += DeliveryFee(l.DeliveriesPerMonth, l.SubscriptionMonths)
	}
	if addons.Vase {
		t.AddonsPrice += AddonPrice
	}
	if addons.Pruner {
		t.AddonsPrice += AddonPrice
	}
	t.Total = t.ItemsPrice + t.DeliveryPrice + t.AddonsPrice
	return t
}
