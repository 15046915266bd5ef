package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProductType string

const (
	ProductTypeBouquet      ProductType = "bouquet"
	ProductTypeFreshFlowers ProductType = "fresh-flowers"
)

type ProductSize string

const (
	ProductSizeS ProductSize = "S"
	ProductSizeM ProductSize = "M"
	ProductSizeL ProductSize = "L"
)

// 商品カタログ。価格は最小通貨単位の整数。サイズはブーケのみ。
type Product struct {
	ID               int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title            string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description      string                      `gorm:"type:text" json:"description"`
	Photos           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photos"`
	PricePerDelivery int64                       `gorm:"not null" json:"price_per_delivery"`
	MaxDeliveries    int64                       `gorm:"not null" json:"max_deliveries"`
	MaxMonths        int64                       `gorm:"not null" json:"max_months"`
	Type             ProductType                 `gorm:"type:varchar(20);not null" json:"type"`
	Size             ProductSize                 `gorm:"type:varchar(2)" json:"size,omitempty"`
	CreatedAt        time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
