package repository

import (
	"context"

	"flora/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	// プロフィール項目（avatar等）の更新
	Update(ctx context.Context, u model.User) error
	List(ctx context.Context) ([]model.User, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (model.Admin, error)
}
