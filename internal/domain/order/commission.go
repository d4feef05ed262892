package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/podstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CommissionStatus represents the payout state of an affiliate commission
type CommissionStatus string

const (
	CommissionStatusPending  CommissionStatus = "pending"
	CommissionStatusApproved CommissionStatus = "approved"
	CommissionStatusPaid     CommissionStatus = "paid"
)

// IsValid checks if the status is a valid CommissionStatus
func (s CommissionStatus) IsValid() bool {
	switch s {
	case CommissionStatusPending, CommissionStatusApproved, CommissionStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of CommissionStatus
func (s CommissionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can move to the target status.
// Commissions only move forward: pending -> approved -> paid.
func (s CommissionStatus) CanTransitionTo(target CommissionStatus) bool {
	switch s {
	case CommissionStatusPending:
		return target == CommissionStatusApproved
	case CommissionStatusApproved:
		return target == CommissionStatusPaid
	}
	return false
}

// AffiliateCommission represents a commission owed to an affiliate for a
// single custom order. At most one commission exists per order; amount and
// rate are immutable once created, only the status moves.
type AffiliateCommission struct {
	shared.BaseEntity
	AccountID        int64
	CustomOrderID    uuid.UUID `gorm:"uniqueIndex"`
	CommissionAmount decimal.Decimal
	CommissionRate   decimal.Decimal
	Status           CommissionStatus
	PaidAt           *time.Time
}

// NewAffiliateCommission creates a pending commission for an order
func NewAffiliateCommission(accountID int64, customOrderID uuid.UUID, amount, rate decimal.Decimal) (*AffiliateCommission, error) {
	if accountID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account ID must be positive")
	}
	if customOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Custom order ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Commission amount cannot be negative")
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Commission rate must be in (0, 1]")
	}

	return &AffiliateCommission{
		BaseEntity:       shared.NewBaseEntity(),
		AccountID:        accountID,
		CustomOrderID:    customOrderID,
		CommissionAmount: amount,
		CommissionRate:   rate,
		Status:           CommissionStatusPending,
	}, nil
}

// Approve moves the commission from pending to approved
func (c *AffiliateCommission) Approve() error {
	if !c.Status.CanTransitionTo(CommissionStatusApproved) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot approve commission in %s status", c.Status))
	}

	c.Status = CommissionStatusApproved
	c.UpdatedAt = time.Now()

	return nil
}

// MarkPaid moves the commission from approved to paid and stamps the payout time
func (c *AffiliateCommission) MarkPaid() error {
	if !c.Status.CanTransitionTo(CommissionStatusPaid) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot mark commission paid in %s status", c.Status))
	}

	now := time.Now()
	c.Status = CommissionStatusPaid
	c.PaidAt = &now
	c.UpdatedAt = now

	return nil
}

// IsUnpaid returns true while the commission has not been paid out
func (c *AffiliateCommission) IsUnpaid() bool {
	return c.Status != CommissionStatusPaid
}
