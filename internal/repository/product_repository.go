package repository

import (
	"context"
	"errors"

	"flora/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	// 商品は物理削除（注文側はスナップショットを持つので参照切れしない）
	Delete(ctx context.Context, productID int64) error
}
