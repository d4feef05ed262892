package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/shared"
)

// GormCustomOrderRepository implements CustomOrderRepository using GORM
type GormCustomOrderRepository struct {
	db *gorm.DB
}

// NewGormCustomOrderRepository creates a new GormCustomOrderRepository
func NewGormCustomOrderRepository(db *gorm.DB) *GormCustomOrderRepository {
	return &GormCustomOrderRepository{db: db}
}

// Save persists a new custom order. An order-number collision surfaces as
// ErrAlreadyExists so the caller can regenerate the number and retry.
func (r *GormCustomOrderRepository) Save(ctx context.Context, o *order.CustomOrder) error {
	o.RecalculateTotal()
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing custom order
func (r *GormCustomOrderRepository) Update(ctx context.Context, o *order.CustomOrder) error {
	o.RecalculateTotal()
	return r.db.WithContext(ctx).Save(o).Error
}

// FindByID finds a custom order by its ID
func (r *GormCustomOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.CustomOrder, error) {
	var o order.CustomOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds a custom order by its customer-facing order number
func (r *GormCustomOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.CustomOrder, error) {
	var o order.CustomOrder
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByFulfillmentOrderID finds a custom order by the provider's order ID
func (r *GormCustomOrderRepository) FindByFulfillmentOrderID(ctx context.Context, fulfillmentOrderID int64) (*order.CustomOrder, error) {
	var o order.CustomOrder
	if err := r.db.WithContext(ctx).
		Where("fulfillment_order_id = ?", fulfillmentOrderID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

var _ order.CustomOrderRepository = (*GormCustomOrderRepository)(nil)
