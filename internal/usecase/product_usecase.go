package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"flora/internal/domain/model"
	repo "flora/internal/repository"

	"gorm.io/datatypes"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// 公開カタログ（絞り込みなし、ストアフロントがカテゴリ分けする）
func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type AdminProductInput struct {
	Title            string
	Description      string
	Photos           []string
	PricePerDelivery int64
	MaxDeliveries    int64
	MaxMonths        int64
	Type             string
	Size             string
}

func (in AdminProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.PricePerDelivery < 0 {
		return NewHTTPError(http.StatusBadRequest, "price_per_delivery must be >= 0")
	}
	if in.MaxDeliveries < 1 {
		return NewHTTPError(http.StatusBadRequest, "max_deliveries must be >= 1")
	}
	if in.MaxMonths < 1 {
		return NewHTTPError(http.StatusBadRequest, "max_months must be >= 1")
	}
	switch model.ProductType(in.Type) {
	case model.ProductTypeBouquet, model.ProductTypeFreshFlowers:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	switch model.ProductSize(in.Size) {
	case "", model.ProductSizeS, model.ProductSizeM, model.ProductSizeL:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid size")
	}
	return nil
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, in AdminProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Photos:           datatypes.NewJSONSlice(in.Photos),
		PricePerDelivery: in.PricePerDelivery,
		MaxDeliveries:    in.MaxDeliveries,
		MaxMonths:        in.MaxMonths,
		Type:             model.ProductType(in.Type),
		Size:             model.ProductSize(in.Size),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdate(ctx context.Context, productID int64, in AdminProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:               productID,
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Photos:           datatypes.NewJSONSlice(in.Photos),
		PricePerDelivery: in.PricePerDelivery,
		MaxDeliveries:    in.MaxDeliveries,
		MaxMonths:        in.MaxMonths,
		Type:             model.ProductType(in.Type),
		Size:             model.ProductSize(in.Size),
		UpdatedAt:        time.Now(),
	})
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, productID)
}

func (u *ProductUsecase) AdminDelete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
