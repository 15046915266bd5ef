package repository

import (
	"context"
	"errors"
	"time"

	"flora/internal/domain/model"
	repo "flora/internal/repository"

	"gorm.io/gorm"
)

type DeliveryGormRepository struct {
	db *gorm.DB
}

func NewDeliveryGormRepository(db *gorm.DB) *DeliveryGormRepository {
	return &DeliveryGormRepository{db: db}
}

func (r *DeliveryGormRepository) CreateBulk(ctx context.Context, orderID int64, deliveries []model.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	for i := range deliveries {
		deliveries[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&deliveries).Error
}

func (r *DeliveryGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Delivery, error) {
	var items []model.Delivery
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("delivery_date asc").
		Find(&items).Error
	if err != nil {
		return []model.Delivery{}, err
	}
	return items, nil
}

func (r *DeliveryGormRepository) FindByID(ctx context.Context, deliveryID int64) (model.Delivery, error) {
	var d model.Delivery
	err := r.db.WithContext(ctx).Where("id = ?", deliveryID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Delivery{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Delivery{}, err
	}
	return d, nil
}

func (r *DeliveryGormRepository) UpdateStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Delivery{}).
		Where("id = ?", deliveryID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DeliveryGormRepository) UpdateDate(ctx context.Context, deliveryID int64, date time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Delivery{}).
		Where("id = ?", deliveryID).
		Update("delivery_date", date)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
