package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/shared"
)

// DefaultCommissionRate is the share of an order's product price credited
// to the referring affiliate when no rate is configured
var DefaultCommissionRate = decimal.RequireFromString("0.15")

// CommissionTotals summarizes an affiliate's earnings
type CommissionTotals struct {
	AccountID int64
	Total     decimal.Decimal
	Unpaid    decimal.Decimal
}

// CommissionService attributes affiliate commissions to orders and manages
// their payout lifecycle.
type CommissionService struct {
	commissions order.CommissionRepository
	accounts    order.AccountDirectory
	orders      order.CustomOrderRepository
	rate        decimal.Decimal
	logger      *zap.Logger
}

// NewCommissionService creates a commission service. A zero rate falls
// back to DefaultCommissionRate.
func NewCommissionService(
	commissions order.CommissionRepository,
	accounts order.AccountDirectory,
	orders order.CustomOrderRepository,
	rate decimal.Decimal,
	logger *zap.Logger,
) *CommissionService {
	if !rate.IsPositive() {
		rate = DefaultCommissionRate
	}
	return &CommissionService{
		commissions: commissions,
		accounts:    accounts,
		orders:      orders,
		rate:        rate,
		logger:      logger,
	}
}

// Record credits the referring affiliate for an order. It is a no-op when
// the order carries no valid affiliate code, the account cannot earn
// commissions, or a commission already exists for the order. Attribution
// failures are logged and never fail the order flow.
func (s *CommissionService) Record(ctx context.Context, customOrder *order.CustomOrder) {
	if customOrder.AffiliateCode == "" {
		return
	}

	accountID, ok := order.ParseAffiliateCode(customOrder.AffiliateCode)
	if !ok {
		s.logger.Warn("order carries a malformed affiliate code",
			zap.String("order_number", customOrder.OrderNumber),
			zap.String("affiliate_code", customOrder.AffiliateCode))
		return
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("affiliate account not found",
				zap.String("order_number", customOrder.OrderNumber),
				zap.Int64("account_id", accountID))
		} else {
			s.logger.Error("affiliate account lookup failed",
				zap.Int64("account_id", accountID),
				zap.Error(err))
		}
		return
	}
	if !account.CanEarnCommission() {
		s.logger.Warn("account role cannot earn commissions",
			zap.Int64("account_id", accountID),
			zap.String("role", string(account.Role)))
		return
	}

	if _, err := s.commissions.FindByOrderID(ctx, customOrder.ID); err == nil {
		return
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("commission lookup failed",
			zap.String("order_id", customOrder.ID.String()),
			zap.Error(err))
		return
	}

	// Commission is computed on the product price only, never shipping
	amount := customOrder.ProductPrice.Mul(s.rate).Round(2)

	commission, err := order.NewAffiliateCommission(accountID, customOrder.ID, amount, s.rate)
	if err != nil {
		s.logger.Error("failed to build commission",
			zap.String("order_number", customOrder.OrderNumber),
			zap.Error(err))
		return
	}
	if err := s.commissions.Save(ctx, commission); err != nil {
		s.logger.Error("failed to save commission",
			zap.String("order_number", customOrder.OrderNumber),
			zap.Error(err))
		return
	}

	if err := customOrder.SetCommissionAmount(amount); err == nil {
		if err := s.orders.Update(ctx, customOrder); err != nil {
			s.logger.Error("failed to record commission amount on order",
				zap.String("order_number", customOrder.OrderNumber),
				zap.Error(err))
		}
	}

	s.logger.Info("commission recorded",
		zap.String("order_number", customOrder.OrderNumber),
		zap.Int64("account_id", accountID),
		zap.String("amount", amount.String()))
}

// Approve moves a commission from pending to approved
func (s *CommissionService) Approve(ctx context.Context, customOrderID uuid.UUID) (*order.AffiliateCommission, error) {
	commission, err := s.commissions.FindByOrderID(ctx, customOrderID)
	if err != nil {
		return nil, err
	}
	if err := commission.Approve(); err != nil {
		return nil, err
	}
	if err := s.commissions.Update(ctx, commission); err != nil {
		return nil, err
	}
	return commission, nil
}

// MarkPaid settles an approved commission
func (s *CommissionService) MarkPaid(ctx context.Context, customOrderID uuid.UUID) (*order.AffiliateCommission, error) {
	commission, err := s.commissions.FindByOrderID(ctx, customOrderID)
	if err != nil {
		return nil, err
	}
	if err := commission.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.commissions.Update(ctx, commission); err != nil {
		return nil, err
	}
	return commission, nil
}

// Totals reports lifetime and unpaid commission totals for an account
func (s *CommissionService) Totals(ctx context.Context, accountID int64) (*CommissionTotals, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	total, err := s.commissions.TotalForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.commissions.UnpaidTotalForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &CommissionTotals{AccountID: accountID, Total: total, Unpaid: unpaid}, nil
}
