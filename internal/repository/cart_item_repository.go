package repository

import (
	"context"

	"flora/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	DeleteByID(ctx context.Context, cartItemID int64) error
	// チェックアウト・明示的クリアで全削除
	DeleteByUserID(ctx context.Context, userID int64) error
}
