package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/shared"
)

// GormCommissionRepository implements CommissionRepository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// Save persists a new commission. The unique index on custom_order_id
// enforces at most one commission per order at the storage level.
func (r *GormCommissionRepository) Save(ctx context.Context, c *order.AffiliateCommission) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing commission
func (r *GormCommissionRepository) Update(ctx context.Context, c *order.AffiliateCommission) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// FindByOrderID finds the commission recorded for a custom order
func (r *GormCommissionRepository) FindByOrderID(ctx context.Context, customOrderID uuid.UUID) (*order.AffiliateCommission, error) {
	var c order.AffiliateCommission
	if err := r.db.WithContext(ctx).
		Where("custom_order_id = ?", customOrderID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// TotalForAccount sums all commissions earned by an account
func (r *GormCommissionRepository) TotalForAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	return r.sumForAccount(ctx, r.db.WithContext(ctx).
		Model(&order.AffiliateCommission{}).
		Where("account_id = ?", accountID))
}

// UnpaidTotalForAccount sums commissions not yet paid out to an account
func (r *GormCommissionRepository) UnpaidTotalForAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	return r.sumForAccount(ctx, r.db.WithContext(ctx).
		Model(&order.AffiliateCommission{}).
		Where("account_id = ? AND status <> ?", accountID, order.CommissionStatusPaid))
}

func (r *GormCommissionRepository) sumForAccount(ctx context.Context, query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := query.
		Select("SUM(commission_amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

var _ order.CommissionRepository = (*GormCommissionRepository)(nil)
